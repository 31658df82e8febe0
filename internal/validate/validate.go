// Package validate normalizes hostnames and network interface fields.
package validate

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

type FieldDef struct {
	Key      string
	Example  string
	Validate func(string) (string, error) // нормализация/проверка одного значения
}

/* ——— validators ——— */

var reHostname = regexp.MustCompile(`^(?i:[a-z0-9](?:[a-z0-9_-]{0,61}[a-z0-9])?)(?:\.(?i:[a-z0-9](?:[a-z0-9_-]{0,61}[a-z0-9])?))*$`)

// Hostname accepts RFC 1123 names (underscores tolerated, case kept).
func Hostname(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" || len(s) > 253 || !reHostname.MatchString(s) {
		return "", errors.New("invalid hostname")
	}
	return s, nil
}

func IP(v string) (string, error) {
	ip := net.ParseIP(strings.TrimSpace(v))
	if ip == nil {
		return "", errors.New("invalid ip address")
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String(), nil
	}
	return ip.String(), nil
}

// Netmask принимает 255.255.255.0 или длину префикса (24), возвращает dotted-форму.
func Netmask(v string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "/")
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 32 {
		return net.IP(net.CIDRMask(n, 32)).String(), nil
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return "", errors.New("invalid netmask")
	}
	m := net.IPMask(ip.To4())
	if ones, bits := m.Size(); ones == 0 && bits == 0 && !ip.Equal(net.IPv4zero) {
		return "", errors.New("invalid netmask (non-contiguous)")
	}
	return ip.To4().String(), nil
}

func MAC(v string) (string, error) {
	hw, err := net.ParseMAC(strings.TrimSpace(v))
	if err != nil || len(hw) != 6 {
		return "", errors.New("invalid mac address")
	}
	return hw.String(), nil
}

func VLAN(v string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return "", errors.New("invalid vlan")
	}
	if n < 1 || n > 4094 {
		return "", fmt.Errorf("vlan out of range [1..4094]")
	}
	return strconv.Itoa(n), nil
}

/* ——— catalog ——— */

var InterfaceCatalog = []FieldDef{
	{Key: "ip_address", Example: "10.0.0.12", Validate: IP},
	{Key: "netmask", Example: "255.255.255.0", Validate: Netmask},
	{Key: "gateway", Example: "10.0.0.1", Validate: IP},
	{Key: "mac_address", Example: "aa:bb:cc:dd:ee:ff", Validate: MAC},
	{Key: "vlan", Example: "100", Validate: VLAN},
}

// Interface проверяет и нормализует поля интерфейса на месте.
// Пустые строки превращаются в nil (колонка станет NULL).
func Interface(fields map[string]any) error {
	var errs []error
	for _, d := range InterfaceCatalog {
		raw, ok := fields[d.Key]
		if !ok || raw == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(raw))
		if s == "" {
			fields[d.Key] = nil
			continue
		}
		norm, err := d.Validate(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Key, err))
			continue
		}
		fields[d.Key] = norm
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return gatewayInSubnet(fields)
}

// gatewayInSubnet проверяет только IPv4-тройку ip/netmask/gateway, когда заданы все три.
func gatewayInSubnet(fields map[string]any) error {
	ipS, _ := fields["ip_address"].(string)
	maskS, _ := fields["netmask"].(string)
	gwS, _ := fields["gateway"].(string)
	if ipS == "" || maskS == "" || gwS == "" {
		return nil
	}
	ip, gw := net.ParseIP(ipS).To4(), net.ParseIP(gwS).To4()
	mask := net.ParseIP(maskS).To4()
	if ip == nil || gw == nil || mask == nil {
		return nil
	}
	nw := &net.IPNet{IP: ip.Mask(net.IPMask(mask)), Mask: net.IPMask(mask)}
	if !nw.Contains(gw) {
		return fmt.Errorf("gateway %s is outside %s", gwS, nw.String())
	}
	return nil
}
