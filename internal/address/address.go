package address

import (
	"net"
	"strconv"
	"strings"
)

const DefaultAddr = "0.0.0.0"

// Normalize prepends the default address if only a port is presented.
func Normalize(addr string) string {
	if len(stripPort(addr)) == 0 {
		return DefaultAddr + addr
	}

	return addr
}

// Join returns the host:port pair.
func Join(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}

// SetPort replaces the port of the address.
func SetPort(addr string, port uint16) string {
	return Join(stripPort(Normalize(addr)), port)
}

func IsLocalhost(addr string) bool {
	host := stripPort(addr)

	return strings.EqualFold(host, "localhost") || host == "127.0.0.1"
}

func IsIP(addr string) bool {
	return net.ParseIP(stripPort(addr)) != nil
}

func stripPort(addr string) string {
	colon := strings.IndexByte(addr, ':')
	if colon != -1 {
		return addr[:colon]
	}

	return addr
}
