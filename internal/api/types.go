// ABOUTME: Wire types shared by the RFRP controller REST endpoints
// ABOUTME: JSON field names must match the controller contract exactly

package api

// User is an account on the controller.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"isAdmin"`
	TrafficQuota int64  `json:"trafficQuota"` // bytes; 0 means unlimited
	TrafficUsed  int64  `json:"trafficUsed"`  // bytes
	CreatedAt    string `json:"createdAt"`
}

// Node is a connected rfrp client process (the tunnel endpoint). The REST
// paths call these "clients"; Node avoids colliding with api.Client.
type Node struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Secret     string `json:"secret,omitempty"`
	Status     string `json:"status"` // online | offline
	Version    string `json:"version"`
	Remark     string `json:"remark"`
	LastSeenAt string `json:"lastSeenAt"`
}

// Proxy is a forwarded port owned by a node.
type Proxy struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	Name       string `json:"name"`
	Type       string `json:"type"` // tcp | udp | http | https
	LocalIP    string `json:"localIp"`
	LocalPort  int    `json:"localPort"`
	RemotePort int    `json:"remotePort"`
	Domain     string `json:"domain,omitempty"`
	Enabled    bool   `json:"enabled"`
}

// UserTraffic is one user's row in a traffic overview.
type UserTraffic struct {
	UserID     int64  `json:"userId"`
	Username   string `json:"username"`
	TrafficIn  int64  `json:"trafficIn"`
	TrafficOut int64  `json:"trafficOut"`
	Quota      int64  `json:"quota"`
}

// TrafficOverview is the controller-wide traffic summary.
type TrafficOverview struct {
	TotalIn  int64         `json:"totalIn"`
	TotalOut int64         `json:"totalOut"`
	Users    []UserTraffic `json:"users"`
}

// DashboardStats is the aggregate view backing the dashboard landing page.
type DashboardStats struct {
	UserCount    int64 `json:"userCount"`
	ClientCount  int64 `json:"clientCount"`
	OnlineCount  int64 `json:"onlineCount"`
	ProxyCount   int64 `json:"proxyCount"`
	TrafficIn    int64 `json:"trafficIn"`
	TrafficOut   int64 `json:"trafficOut"`
	TrafficQuota int64 `json:"trafficQuota"`
}

// ConfigItem is one system-tunable setting. Value arrives loosely typed;
// ValueType declares how it must be parsed and compared.
type ConfigItem struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Description string `json:"description"`
	ValueType   string `json:"valueType"` // number | string | boolean
}

// ConfigUpdate is one changed key/value pair in a batch config update.
type ConfigUpdate struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
