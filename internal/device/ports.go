package device

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial port available on the host.
type PortInfo struct {
	Name        string
	Description string
}

// Label renders the port the way the connection screen shows it.
func (p PortInfo) Label() string {
	if p.Description == "" {
		return p.Name
	}
	return p.Name + " - " + p.Description
}

// ListPorts enumerates the host's serial ports.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		info := PortInfo{Name: d.Name}
		if d.IsUSB && d.Product != "" {
			info.Description = d.Product
		}
		ports = append(ports, info)
	}
	return ports, nil
}
