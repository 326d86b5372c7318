package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr            string
	MaxUploadMemory int64
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("MD5CALC_ADDR"),
		},
		&cli.Int64Flag{
			Name:        "max-upload-memory",
			Usage:       "Bytes of uploaded files kept in memory, the rest is stored in temporary files",
			Value:       32 << 20,
			Destination: &c.MaxUploadMemory,
			Sources:     cli.EnvVars("MD5CALC_MAX_UPLOAD_MEMORY"),
		},
	}
}
