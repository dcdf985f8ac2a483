package main

import "github.com/spf13/viper"

const (
	defaultPageSize = 25
)

// bindConfigDefaults registers the typed defaults every field falls back
// to when neither a flag nor a LOGSCOPE_ environment variable sets it (no
// config file is read), the way the heavier
// CLIs in this corpus layer viper over cobra: flags bind into viper, viper
// exposes a typed struct the Application consumes.
func bindConfigDefaults(v *viper.Viper) {
	v.SetDefault("page-size", defaultPageSize)
	v.SetDefault("buffer-size", defaultPageSize*5)
	v.SetDefault("low-buffer-threshold", defaultPageSize)
	v.SetDefault("source", "sqlite")
	v.SetDefault("dsn", "logscope.db")
	v.SetDefault("path", "")
	v.SetDefault("follow", false)

	v.SetEnvPrefix("LOGSCOPE")
	v.AutomaticEnv()
}

func configFromViper(v *viper.Viper) Config {
	return Config{
		PageSize:           v.GetInt("page-size"),
		BufferSize:         v.GetInt("buffer-size"),
		LowBufferThreshold: v.GetInt("low-buffer-threshold"),
		MaxWidth:           v.GetInt("page-size")*10 + 200,
		Source:             v.GetString("source"),
		DSN:                v.GetString("dsn"),
		Path:               v.GetString("path"),
		Follow:             v.GetBool("follow"),
	}
}
