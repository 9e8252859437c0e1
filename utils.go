/* utils.go
 * Utility functions used by the serve command
 * Authors: Ahasuerus
 */

package main

import (
	"fmt"
	"os"

	"ravens-nest/api/api"
	"ravens-nest/config"
)

const (
	defaultStoreURI = "sqlite://ravens-nest.db"
	defaultDBName   = "ravens_nest"
	defaultHTTPAddr = ":8080"
)

// envOr returns the environment variable key, or fallback when it is unset or empty
func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// discordToken picks the production or beta bot token from the environment
// Preconditions: DISCORD_PROD_TOKEN or DISCORD_BETA_TOKEN is set, usually via .env
// Postconditions: Returns the token, or an error naming the missing variable
func discordToken(test bool) (string, error) {
	key := "DISCORD_PROD_TOKEN"
	if test {
		key = "DISCORD_BETA_TOKEN"
	}
	token := os.Getenv(key)
	if token == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return token, nil
}

// settingsFrom converts the loaded config into the API settings
func settingsFrom(cfg *config.Config) api.Settings {
	return api.Settings{
		BaseEloDiff: cfg.Matchmaking.BaseEloDiff,
		MaxEloDiff:  cfg.Matchmaking.MaxEloDiff,
		KFactor:     cfg.Matchmaking.KFactor,
		Pools:       cfg.MapPools(),
	}
}
