package config

// fileLayout mirrors the key hierarchy of configs/config.yml, so marshalled
// settings can be read back with Load.
type fileLayout struct {
	Port  string        `yaml:"port"`
	Log   LogSettings   `yaml:"log"`
	DB    DBSettings    `yaml:"db"`
	Auth  AuthSettings  `yaml:"auth"`
	Admin adminLayout   `yaml:"admin"`
	WiFi  wifiLayout    `yaml:"wifi"`
	Relay RelaySettings `yaml:"relay"`
}

type adminLayout struct {
	Phone         string `yaml:"phone"`
	SecretCommand string `yaml:"secret_command"`
}

type wifiLayout struct {
	Station     StationSettings     `yaml:"station"`
	AccessPoint AccessPointSettings `yaml:"access_point"`
}

// MarshalYAML writes s using the config file keys (admin.phone, wifi.station.ssid, ...).
func (s Settings) MarshalYAML() (interface{}, error) {
	return fileLayout{
		Port:  s.Port,
		Log:   s.Log,
		DB:    s.DB,
		Auth:  s.Auth,
		Admin: adminLayout{Phone: s.AdminPhone, SecretCommand: s.SecretCommand},
		WiFi:  wifiLayout{Station: s.Station, AccessPoint: s.AccessPoint},
		Relay: s.Relay,
	}, nil
}
