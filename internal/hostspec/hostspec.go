package hostspec

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Spec describes the machine serving the dashboard.
type Spec struct {
	Host     string
	Hostname string
	Platform string
}

// DashboardTitle is the portal name shown next to the back link.
func (s Spec) DashboardTitle() string {
	return s.Host + " OnDemand"
}

type InfoFunc func(ctx context.Context) (*host.InfoStat, error)

// Lookup reads the host information. A non-empty override replaces the
// derived host name.
func Lookup(ctx context.Context, override string) (Spec, error) {
	return lookup(ctx, override, host.InfoWithContext)
}

func lookup(ctx context.Context, override string, info InfoFunc) (Spec, error) {
	stat, err := info(ctx)
	if err != nil {
		if override != "" {
			return Spec{Host: override}, nil
		}
		return Spec{}, fmt.Errorf("read host info: %w", err)
	}

	spec := Spec{
		Host:     override,
		Hostname: stat.Hostname,
		Platform: stat.Platform,
	}
	if spec.Host == "" {
		spec.Host = ShortName(stat.Hostname)
	}
	return spec, nil
}

// ShortName trims the domain from a fully qualified host name.
func ShortName(hostname string) string {
	short, _, _ := strings.Cut(hostname, ".")
	return short
}
