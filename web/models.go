/* models.go
 * Contains the web server configuration and response shapes
 * Authors: Ahasuerus
 */

package web

import (
	"ravens-nest/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server serves read-only JSON views of the matchmaking state
type Server struct {
	api *api.API
}

// NewServer creates a Server over apiPtr
func NewServer(apiPtr *api.API) *Server {
	return &Server{api: apiPtr}
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Matches int    `json:"matches"`
}
