package devices

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lacpctl/pkg/logging"
)

const logSubsystem = "DeviceRepository"

// Repository serves device snapshot data from a directory tree of the form
// <root>/<deviceName>/*.json. Documents are read on every call and never
// cached, so edits to the underlying files are visible on the next query.
type Repository struct {
	rootDir string
}

// NewRepository creates a repository over the given devices root directory.
func NewRepository(rootDir string) *Repository {
	return &Repository{rootDir: rootDir}
}

// RootDir returns the devices root this repository reads from.
func (r *Repository) RootDir() string {
	return r.rootDir
}

// ListDevices returns the names of all devices, sorted ascending. A missing
// root directory is an empty inventory, not an error.
func (r *Repository) ListDevices() []string {
	entries, err := os.ReadDir(r.rootDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(logSubsystem, "Cannot read devices root %s: %v", r.rootDir, err)
		}
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// HasDevice reports whether a device directory exists.
func (r *Repository) HasDevice(name string) bool {
	info, err := os.Stat(filepath.Join(r.rootDir, name))
	return err == nil && info.IsDir()
}

// categoryFiles maps each data category present for a device to its file
// path. Unrecognized .json files are keyed by their literal filename. When
// two files classify to the same category the lexicographically first one
// wins and the duplicate is logged.
func (r *Repository) categoryFiles(name string) map[string]string {
	deviceDir := filepath.Join(r.rootDir, name)
	entries, err := os.ReadDir(deviceDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(logSubsystem, "Cannot read device directory %s: %v", deviceDir, err)
		}
		return nil
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		key := entry.Name()
		if category, ok := classifyCategory(entry.Name()); ok {
			if existing, dup := files[category]; dup {
				logging.Warn(logSubsystem, "Device %s has multiple %s files, keeping %s and ignoring %s",
					name, category, filepath.Base(existing), entry.Name())
				continue
			}
			key = category
		}
		files[key] = filepath.Join(deviceDir, entry.Name())
	}
	return files
}

// AvailableCategories lists the data categories (typed names and opaque
// filenames) present for a device, sorted ascending.
func (r *Repository) AvailableCategories(name string) []string {
	files := r.categoryFiles(name)
	categories := make([]string, 0, len(files))
	for category := range files {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// LoadDeviceData loads parsed snapshot documents for a device.
//
// For CategoryAll every discoverable file is attempted and each one that
// parses is included; a parse failure is logged and that entry is simply
// omitted, so a partial result is the normal outcome, not a failure. For a
// specific category the result holds at most that one key; when the
// category file does not exist the result is empty and the categories that
// are available get logged instead.
func (r *Repository) LoadDeviceData(name, category string) map[string]interface{} {
	files := r.categoryFiles(name)
	result := make(map[string]interface{})

	if category == CategoryAll || category == "" {
		for key, path := range files {
			if parsed, ok := r.parseFile(name, key, path); ok {
				result[key] = parsed
			}
		}
		return result
	}

	path, ok := files[category]
	if !ok {
		logging.Info(logSubsystem, "Device %s has no %s data; available categories: %s",
			name, category, strings.Join(r.AvailableCategories(name), ", "))
		return result
	}
	if parsed, ok := r.parseFile(name, category, path); ok {
		result[category] = parsed
	}
	return result
}

// parseFile reads and parses one snapshot file. Read and parse failures are
// logged and reported as absence.
func (r *Repository) parseFile(device, category, path string) (interface{}, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn(logSubsystem, "Cannot read %s data for device %s: %v", category, device, err)
		return nil, false
	}
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		logging.Warn(logSubsystem, "Malformed JSON in %s for device %s: %v", filepath.Base(path), device, err)
		return nil, false
	}
	return parsed, true
}

// rawCategory reads the raw bytes of one typed category file, if present.
func (r *Repository) rawCategory(name, category string) ([]byte, bool) {
	path, ok := r.categoryFiles(name)[category]
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn(logSubsystem, "Cannot read %s data for device %s: %v", category, name, err)
		return nil, false
	}
	return data, true
}

// System returns the decoded device identity, or nil when the system
// document or its identity section is missing or malformed.
func (r *Repository) System(name string) *SystemInfo {
	doc, ok := r.systemDocument(name)
	if !ok {
		return nil
	}
	return doc.DeviceInfo
}

// Credentials returns the device login credentials from the system
// document, or nil when the document or its login section is absent.
func (r *Repository) Credentials(name string) *LoginCredentials {
	doc, ok := r.systemDocument(name)
	if !ok {
		return nil
	}
	return doc.LoginCredentials
}

func (r *Repository) systemDocument(name string) (*systemDocument, bool) {
	data, ok := r.rawCategory(name, CategorySystem)
	if !ok {
		return nil, false
	}
	var doc systemDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Warn(logSubsystem, "Malformed system document for device %s: %v", name, err)
		return nil, false
	}
	return &doc, true
}

// Interfaces returns the ordered interface records of a device, or an
// empty slice when the interfaces document is absent or malformed.
func (r *Repository) Interfaces(name string) []Record {
	data, ok := r.rawCategory(name, CategoryInterfaces)
	if !ok {
		return nil
	}
	return r.decodeRecords(name, CategoryInterfaces, data, "interfaces")
}

// LldpNeighbors returns the ordered LLDP neighbor records of a device, or
// an empty slice when the lldp document is absent or malformed.
func (r *Repository) LldpNeighbors(name string) []Record {
	data, ok := r.rawCategory(name, CategoryLldp)
	if !ok {
		return nil
	}
	return r.decodeRecords(name, CategoryLldp, data, "neighbors", "lldp_neighbors")
}

// LacpInterfaces filters Interfaces down to the records matched by the
// link-aggregation heuristic.
func (r *Repository) LacpInterfaces(name string) []Record {
	return FilterLacpRecords(r.Interfaces(name))
}

// decodeRecords accepts either a bare JSON array of records or an object
// wrapping such an array under one of the given keys. Capture tooling has
// produced both shapes.
func (r *Repository) decodeRecords(device, category string, data []byte, wrapperKeys ...string) []Record {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		logging.Warn(logSubsystem, "Malformed %s document for device %s: %v", category, device, err)
		return nil
	}
	for _, key := range wrapperKeys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			logging.Warn(logSubsystem, "Malformed %q list in %s document for device %s: %v", key, category, device, err)
			return nil
		}
		return records
	}
	// Syntactically valid JSON in an unknown shape yields an empty view.
	return nil
}

// Overview aggregates the derived views of one device.
func (r *Repository) Overview(name string) Overview {
	interfaces := r.Interfaces(name)
	return Overview{
		Name:               name,
		System:             r.System(name),
		HasCredentials:     r.Credentials(name) != nil,
		InterfaceCount:     len(interfaces),
		LldpNeighborCount:  len(r.LldpNeighbors(name)),
		LacpInterfaceCount: len(FilterLacpRecords(interfaces)),
		Categories:         r.AvailableCategories(name),
	}
}
