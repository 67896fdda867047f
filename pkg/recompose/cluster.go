package recompose

import (
	"slices"
	"strings"

	"github.com/matzehuels/venntower/pkg/diagram"
)

// Cluster is a group of one, two or four zones that a single new curve
// carves out together.
type Cluster struct {
	zones []*diagram.Zone
}

// NewCluster groups zones, keeping their order.
func NewCluster(zones ...*diagram.Zone) Cluster {
	return Cluster{zones: slices.Clone(zones)}
}

// Zones returns the zones of the cluster.
func (c Cluster) Zones() []*diagram.Zone { return slices.Clone(c.zones) }

// Len returns the number of zones.
func (c Cluster) Len() int { return len(c.zones) }

func (c Cluster) String() string {
	parts := make([]string, len(c.zones))
	for i, z := range c.zones {
		parts[i] = z.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
