package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"qkart/internal/log"
)

// Watch re-reads the config file v is using whenever it is written and hands
// the new API section to onChange. Edits that fail validation are logged and
// skipped, so a half-saved file never reaches the client.
func Watch(v *viper.Viper, onChange func(APIConfig)) {
	v.OnConfigChange(reloadHandler(v, onChange))
	v.WatchConfig()
	log.Debug(log.CatConfig, "Watching config", "path", v.ConfigFileUsed())
}

// reloadHandler is called by viper after it has re-read the file.
func reloadHandler(v *viper.Viper, onChange func(APIConfig)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		var api APIConfig
		if err := v.UnmarshalKey("api", &api); err != nil {
			log.ErrorErr(log.CatConfig, "Reloading config failed", err, "path", e.Name)
			return
		}
		if err := ValidateAPI(api); err != nil {
			log.Warn(log.CatConfig, "Ignoring invalid config change", "path", e.Name, "error", err)
			return
		}

		log.Info(log.CatConfig, "Config changed", "path", e.Name, "endpoint", api.Endpoint)
		onChange(api)
	}
}
