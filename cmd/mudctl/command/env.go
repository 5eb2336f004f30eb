package command

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envDefaults supplies flag defaults from the environment.
type envDefaults struct {
	PlayersPath string `env:"PEAKE_PLAYERS"    envDefault:"players.json"`
	BackupDir   string `env:"PEAKE_BACKUP_DIR" envDefault:"backups"`
	Addr        string `env:"PEAKE_ADDR"       envDefault:"localhost:4000"`
}

func loadEnvDefaults() (envDefaults, error) {
	var d envDefaults
	if err := env.Parse(&d); err != nil {
		return envDefaults{}, fmt.Errorf("parse env: %w", err)
	}
	return d, nil
}
