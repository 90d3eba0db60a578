package props

import (
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/pkg/types"
	"github.com/joshuapare/propkit/trie"
)

const (
	// DefaultRoot is where the property service maps its regions.
	DefaultRoot = "/dev/__properties__"

	// SDKNougat is the first release with one region per label.
	SDKNougat = 24
	// SDKOreo is the first release with split platform/vendor label files.
	SDKOreo = 26
	// DefaultSDK is assumed when Config.SDK is zero.
	DefaultSDK = 30
)

// Config holds every knob of a Store. The zero value reads the live regions
// of a current release using the platform defaults.
type Config struct {
	// Root is the region directory, or the single region file below SDK 24.
	Root string
	// SDK selects the region layout and default label files.
	SDK int

	// UseFiles forces label definition files even when Catalog is valid.
	UseFiles bool
	// LabelFiles overrides the default label definition files.
	LabelFiles []string
	// Catalog is the platform context catalog, if any.
	Catalog types.Catalog

	// WantLabels tags returned records with their label.
	WantLabels bool

	// Confirm is asked before a missing name is created. Nil creates
	// without asking.
	Confirm trie.ConfirmFunc
	// IsPrivileged reports whether the caller may mutate regions. Defaults
	// to an effective uid check.
	IsPrivileged func() bool

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.SDK <= 0 {
		c.SDK = DefaultSDK
	}
	if c.IsPrivileged == nil {
		c.IsPrivileged = isPrivileged
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.LabelFiles == nil {
		c.LabelFiles = DefaultLabelFiles(c.SDK, readable)
	}
	return c
}

// Legacy reports whether the configuration uses the single-region layout.
func (c Config) Legacy() bool { return c.SDK > 0 && c.SDK < SDKNougat }

// DefaultLabelFiles returns the label definition files the platform uses at
// sdk. readable reports whether a path can be read.
func DefaultLabelFiles(sdk int, readable func(string) bool) []string {
	const plat = "/system/etc/selinux/plat_property_contexts"
	switch {
	case sdk >= SDKOreo && readable(plat):
		return []string{
			plat,
			"/vendor/etc/selinux/nonplat_property_contexts",
			"/vendor/etc/selinux/vendor_property_contexts",
			"/product/etc/selinux/product_property_contexts",
			"/odm/etc/selinux/odm_property_contexts",
			"/system_ext/etc/selinux/system_ext_property_contexts",
		}
	case sdk >= SDKOreo:
		return []string{"/plat_property_contexts", "/nonplat_property_contexts"}
	default:
		return []string{"/property_contexts"}
	}
}
