package devices

// Data category names. Snapshot files are assigned to a category by
// filename; anything unrecognized is kept under its literal filename.
const (
	CategoryInterfaces = "interfaces"
	CategoryLldp       = "lldp"
	CategorySystem     = "system"
	CategoryAll        = "all"
)

// Record is one open-ended snapshot record (an interface, an LLDP
// neighbor). Snapshots come from heterogeneous device families, so no
// fixed field set is enforced.
type Record map[string]interface{}

// LoginCredentials are the device login fields captured in the system
// document.
type LoginCredentials struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SystemInfo is the device identity captured in the system document.
type SystemInfo struct {
	Type    string `json:"type"`
	Family  string `json:"family"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
}

// systemDocument is the decoded shape of a system snapshot file.
type systemDocument struct {
	DeviceInfo       *SystemInfo       `json:"device_info"`
	LoginCredentials *LoginCredentials `json:"login_credentials"`
}

// Overview aggregates the derived views of one device for display.
type Overview struct {
	Name               string
	System             *SystemInfo
	HasCredentials     bool
	InterfaceCount     int
	LldpNeighborCount  int
	LacpInterfaceCount int
	Categories         []string
}
