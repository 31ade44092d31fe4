package service

import (
	"encoding/json"
	"strings"
	"testing"

	"relay_control/internal/config"
)

func newTestNetwork() *NetworkService {
	return NewNetworkService(
		config.StationSettings{SSID: "MyWiFiNetwork", Pass: "password1234"},
		config.AccessPointSettings{SSID: "ESP8266-Access-Point", Pass: "123456789", Channel: 6},
	)
}

func TestNetworkService_AccessPointAdvertisesConfiguredCredentials(t *testing.T) {
	ap := newTestNetwork().AccessPoint()

	if ap.SSID != "ESP8266-Access-Point" {
		t.Fatalf("SSID = %q", ap.SSID)
	}
	if ap.Passphrase != "123456789" {
		t.Fatalf("Passphrase = %q", ap.Passphrase)
	}
	if ap.Security != SecurityWPA2PSK || ap.Channel != 6 || ap.Hidden {
		t.Fatalf("unexpected profile: %+v", ap)
	}
}

func TestNetworkService_Station(t *testing.T) {
	st := newTestNetwork().Station()
	if st.SSID != "MyWiFiNetwork" || st.Passphrase != "password1234" {
		t.Fatalf("unexpected station profile: %+v", st)
	}
}

func TestNetworkService_SummaryOmitsPassphrases(t *testing.T) {
	sum := newTestNetwork().Summary()
	if sum.Station.Passphrase != "" || sum.AccessPoint.Passphrase != "" {
		t.Fatalf("summary leaks passphrases: %+v", sum)
	}

	b, err := json.Marshal(newTestNetwork().AccessPoint())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "123456789") {
		t.Fatalf("passphrase serialized: %s", b)
	}
}
