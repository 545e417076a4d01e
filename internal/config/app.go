package config

type AppConfig struct {
	Server  ServerConfig
	Log     LogConfig
	Storage StorageConfig
	Game    GameConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	storageCfg, err := LoadStorage()
	if err != nil {
		return AppConfig{}, err
	}
	gameCfg, err := LoadGame()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:  serverCfg,
		Log:     logCfg,
		Storage: storageCfg,
		Game:    gameCfg,
	}, nil
}
