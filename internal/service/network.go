package service

import "relay_control/internal/config"

const SecurityWPA2PSK = "WPA2-PSK"

// StationProfile is what the device uses to join an existing network.
type StationProfile struct {
	SSID       string `json:"ssid"`
	Passphrase string `json:"-"`
}

// AccessPointProfile is what the device advertises in AP mode.
type AccessPointProfile struct {
	SSID       string `json:"ssid"`
	Passphrase string `json:"-"`
	Channel    int    `json:"channel"`
	Hidden     bool   `json:"hidden"`
	Security   string `json:"security"`
}

// NetworkSummary is safe to expose: passphrases are left empty.
type NetworkSummary struct {
	Station     StationProfile     `json:"station"`
	AccessPoint AccessPointProfile `json:"access_point"`
}

type NetworkService struct {
	station     config.StationSettings
	accessPoint config.AccessPointSettings
}

func NewNetworkService(station config.StationSettings, accessPoint config.AccessPointSettings) *NetworkService {
	return &NetworkService{station: station, accessPoint: accessPoint}
}

func (s *NetworkService) Station() StationProfile {
	return StationProfile{SSID: s.station.SSID, Passphrase: s.station.Pass}
}

func (s *NetworkService) AccessPoint() AccessPointProfile {
	return AccessPointProfile{
		SSID:       s.accessPoint.SSID,
		Passphrase: s.accessPoint.Pass,
		Channel:    s.accessPoint.Channel,
		Hidden:     s.accessPoint.Hidden,
		Security:   SecurityWPA2PSK,
	}
}

func (s *NetworkService) Summary() NetworkSummary {
	st, ap := s.Station(), s.AccessPoint()
	st.Passphrase, ap.Passphrase = "", ""
	return NetworkSummary{Station: st, AccessPoint: ap}
}
