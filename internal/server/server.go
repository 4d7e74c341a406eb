package server

import (
	"drawdash/internal/game"
)

type Server struct {
	reg *game.Registry
	ws  *game.Handler
}

func New(reg *game.Registry, ws *game.Handler) *Server {
	return &Server{reg: reg, ws: ws}
}
