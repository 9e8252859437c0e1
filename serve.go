/* serve.go
 * Contains the serve command: loads config and state, then runs the Discord bot and web server until interrupted
 * Authors: Ahasuerus
 */

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ravens-nest/api/api"
	"ravens-nest/api/store"
	"ravens-nest/bot"
	"ravens-nest/config"
	"ravens-nest/web"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func serveCommand(configs []string, test bool) error {
	cfg, err := config.Load(configs...)
	if err != nil {
		return err
	}

	token, err := discordToken(test)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.Open(ctx, envOr("STORE_URI", defaultStoreURI), envOr("DB_NAME", defaultDBName))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	apiPtr, err := api.NewAPI(s, settingsFrom(cfg))
	if err != nil {
		return err
	}
	if err := apiPtr.Load(ctx); err != nil {
		return err
	}
	if err := apiPtr.StartAutosave(ctx, cfg.AutosaveInterval); err != nil {
		return err
	}

	b, err := bot.NewBot(token, apiPtr)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return b.Run(groupCtx)
	})
	group.Go(func() error {
		return web.Start(groupCtx, web.Config{Addr: envOr("HTTP_ADDR", defaultHTTPAddr), API: apiPtr})
	})
	runErr := group.Wait()

	if err := apiPtr.StopAutosave(); err != nil {
		log.Warn().Err(err).Msg("stopping autosave")
	}
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	saveErr := apiPtr.Save(saveCtx)
	if saveErr == nil {
		log.Info().Msg("state saved on shutdown")
	}
	return errors.Join(runErr, saveErr)
}
