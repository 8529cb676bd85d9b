package utils

import (
	"fmt"
	"net"
	"strings"
)

// TrustedNetworks classifica IPs contra as faixas CIDR configuradas
// (TRUSTED_NETWORKS). É a única resolução de rede feita localmente;
// geolocalização vem pronta do colaborador de GeoIP.
type TrustedNetworks struct {
	networks []*net.IPNet
}

// ParseTrustedNetworks monta o classificador a partir de uma lista
// separada por vírgulas, ex: "10.0.0.0/8, 192.168.0.0/16".
func ParseTrustedNetworks(raw string) (*TrustedNetworks, error) {
	tn := &TrustedNetworks{}

	for _, part := range strings.Split(raw, ",") {
		cidr := strings.TrimSpace(part)
		if cidr == "" {
			continue
		}
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
		}
		tn.networks = append(tn.networks, network)
	}

	return tn, nil
}

// Contains responde se o IP pertence a alguma faixa confiável.
// IPs inválidos ou vazios nunca são confiáveis.
func (tn *TrustedNetworks) Contains(ipAddress string) bool {
	if tn == nil {
		return false
	}

	ip := net.ParseIP(strings.TrimSpace(ipAddress))
	if ip == nil {
		return false
	}

	for _, network := range tn.networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
