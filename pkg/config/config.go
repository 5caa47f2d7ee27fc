// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
)

type Config struct {
	DefaultMode               string `env:"DEFAULT_MODE"                 envDefault:"elimination"     envDocs:"mode used when a tournament is created without one"`
	GroupSize                 int    `env:"GROUP_SIZE"                   envDefault:"4"               envDocs:"target number of tracks per group in groups mode"`
	QualifiersPerGroup        int    `env:"QUALIFIERS_PER_GROUP"         envDefault:"2"               envDocs:"number of tracks advancing from each group to the playoffs"`
	DeathmatchTargetScore     int    `env:"DEATHMATCH_TARGET_SCORE"      envDefault:"10"              envDocs:"wins needed to end a deathmatch"`
	DeathmatchMinBattles      int    `env:"DEATHMATCH_MIN_BATTLES"       envDefault:"50"              envDocs:"lower bound of the deathmatch battle cap"`
	DeathmatchBattlesPerTrack int    `env:"DEATHMATCH_BATTLES_PER_TRACK" envDefault:"5"               envDocs:"deathmatch battle cap per track (cap is max of this times tracks and the minimum)"`
	SnapshotMaxAgeHours       int    `env:"SNAPSHOT_MAX_AGE_HOURS"       envDefault:"720"             envDocs:"snapshots older than this are discarded on load"`
	SnapshotKey               string `env:"SNAPSHOT_KEY"                 envDefault:"tournament_data" envDocs:"key under which the snapshot is stored"`
	SnapshotFormat            string `env:"SNAPSHOT_FORMAT"              envDefault:"json"            envDocs:"snapshot encoding, json or cbor"`
	SnapshotCompress          bool   `env:"SNAPSHOT_COMPRESS"            envDefault:"false"           envDocs:"compress snapshots with zstd"`
	SnapshotBackend           string `env:"SNAPSHOT_BACKEND"             envDefault:"memory"          envDocs:"snapshot store, one of memory, file, redis, bolt, mongo"`
	SnapshotPath              string `env:"SNAPSHOT_PATH"                envDefault:"tournament_data.snapshot" envDocs:"file path used by the file and bolt stores"`
	RedisAddr                 string `env:"REDIS_ADDR"                   envDefault:"localhost:6379"  envDocs:"redis address used by the redis store"`
	MongoURI                  string `env:"MONGO_URI"                    envDefault:"mongodb://localhost:27017" envDocs:"connection uri used by the mongo store"`
	MongoDatabase             string `env:"MONGO_DATABASE"               envDefault:"battle_tournament" envDocs:"database used by the mongo store"`
	LogLevel                  string `env:"LOG_LEVEL"                    envDefault:"info"            envDocs:"logrus level"`
}

// Default returns the configuration with every default applied.
func Default() *Config {
	return &Config{
		DefaultMode:               "elimination",
		GroupSize:                 constants.DefaultGroupSize,
		QualifiersPerGroup:        constants.DefaultQualifiersPerGroup,
		DeathmatchTargetScore:     constants.DefaultDeathmatchTargetScore,
		DeathmatchMinBattles:      constants.DefaultDeathmatchMinBattles,
		DeathmatchBattlesPerTrack: constants.DefaultDeathmatchBattlesPerTrack,
		SnapshotMaxAgeHours:       int(constants.SnapshotMaxAge / time.Hour),
		SnapshotKey:               "tournament_data",
		SnapshotFormat:            "json",
		SnapshotBackend:           "memory",
		SnapshotPath:              "tournament_data.snapshot",
		RedisAddr:                 "localhost:6379",
		MongoURI:                  "mongodb://localhost:27017",
		MongoDatabase:             "battle_tournament",
		LogLevel:                  "info",
	}
}

// Load reads an optional .env file and then the environment.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) SnapshotMaxAge() time.Duration {
	if c.SnapshotMaxAgeHours <= 0 {
		return constants.SnapshotMaxAge
	}
	return time.Duration(c.SnapshotMaxAgeHours) * time.Hour
}

// ConfigureLogging applies LogLevel to the standard logrus logger.
func (c *Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
