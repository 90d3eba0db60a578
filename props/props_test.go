package props

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/internal/testutil"
	"github.com/joshuapare/propkit/pkg/types"
	"github.com/joshuapare/propkit/trie"
)

const (
	labelDefault = "u:object_r:default_prop:s0"
	labelSystem  = "u:object_r:system_prop:s0"
	labelPersist = "u:object_r:persist_prop:s0"
)

// newStore lays out one blank region per label under a temp dir and returns
// a privileged Store over it.
func newStore(t *testing.T, mutate ...func(*Config)) *Store {
	t.Helper()
	dir := t.TempDir()
	contexts := testutil.WriteFile(t, dir, "property_contexts", strings.Join([]string{
		"# test contexts",
		"ro.      " + labelSystem,
		"persist. " + labelPersist,
		"*        " + labelDefault,
	}, "\n"))
	root := filepath.Join(dir, "__properties__")
	for _, l := range []string{labelDefault, labelSystem, labelPersist} {
		testutil.WriteBlankRegion(t, root, l)
	}

	cfg := Config{
		Root:         root,
		SDK:          30,
		LabelFiles:   []string{contexts},
		WantLabels:   true,
		IsPrivileged: func() bool { return true },
	}
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ro.build.id", "ro.build.id", true},
		{"all", "**", true},
		{"*debug*", "*debug*", true},
		{"ro.*", "ro.*", true},
		{".ro", "", false},
		{"ro.", "", false},
		{"nodots", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateName(tt.in)
			if !tt.ok {
				require.True(t, types.IsKind(err, types.ErrKindValidation))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFilter(t *testing.T) {
	recs := []types.Record{{Name: "vendor.b"}, {Name: "ro.c"}, {Name: "ro.a"}, {Name: "ro.debug.enable"}}
	names := func(rs []types.Record) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Name
		}
		return out
	}
	all := []string{"ro.a", "ro.c", "ro.debug.enable", "vendor.b"}

	require.Equal(t, []string{"ro.a", "ro.c", "ro.debug.enable"}, names(Filter(recs, "ro.*")))
	require.Equal(t, []string{"ro.debug.enable"}, names(Filter(recs, "*debug*")))
	require.Equal(t, []string{"vendor.b"}, names(Filter(recs, "*.b")))
	require.Equal(t, all, names(Filter(recs, "**")))
	require.Equal(t, all, names(Filter(recs, "")))
	require.Equal(t, all, names(Filter(recs, "*")))
	require.Equal(t, []string{"ro.c"}, names(Filter(recs, "ro.c")))
	require.Empty(t, Filter(recs, "*nothing*"))
}

func TestDefaultLabelFiles(t *testing.T) {
	yes := func(string) bool { return true }
	no := func(string) bool { return false }

	files := DefaultLabelFiles(33, yes)
	require.Equal(t, "/system/etc/selinux/plat_property_contexts", files[0])
	require.Contains(t, files, "/vendor/etc/selinux/vendor_property_contexts")
	require.Contains(t, files, "/system_ext/etc/selinux/system_ext_property_contexts")

	require.Equal(t, []string{"/plat_property_contexts", "/nonplat_property_contexts"}, DefaultLabelFiles(26, no))
	require.Equal(t, []string{"/property_contexts"}, DefaultLabelFiles(25, yes))
	require.Equal(t, []string{"/property_contexts"}, DefaultLabelFiles(19, yes))
}

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	res, err := s.Set(ctx, "ro.build.type", "user")
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, "ro.build.type", res.Name)
	require.Equal(t, "user", res.Value)
	require.Equal(t, labelSystem, res.Label)
	require.Equal(t, 4, res.Serial.ValueLen())

	got, err := s.Get(ctx, "ro.build.type")
	require.NoError(t, err)
	require.False(t, got.Changed)
	require.Equal(t, res.Record, got.Record)

	// same value again
	res, err = s.Set(ctx, "ro.build.type", "user")
	require.NoError(t, err)
	require.False(t, res.Changed)

	// the record lives in the system region only
	_, err = s.Get(ctx, "persist.build.type")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestGet_Missing(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "sys.nothing")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestGet_NoLabel(t *testing.T) {
	dir := t.TempDir()
	contexts := testutil.WriteFile(t, dir, "property_contexts", "ro. "+labelSystem+"\n")
	s, err := New(Config{Root: dir, SDK: 30, LabelFiles: []string{contexts}})
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "sys.x")
	require.True(t, types.IsKind(err, types.ErrKindNotFound))
}

func TestUpdate_Validation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, func(c *Config) { c.Root = "/nonexistent" })

	_, err := s.Set(ctx, "ro.x", strings.Repeat("v", format.ValueMax))
	require.True(t, types.IsKind(err, types.ErrKindValidation))

	_, err = s.SetCount(ctx, "ro.x", 3)
	require.Error(t, err)
	require.False(t, types.IsKind(err, types.ErrKindValidation))

	v := "x"
	_, err = s.Update(ctx, "ro.*", &v, format.CountUnset)
	require.True(t, types.IsKind(err, types.ErrKindValidation))
}

func TestUpdate_Unprivileged(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, func(c *Config) { c.IsPrivileged = func() bool { return false } })

	_, err := s.Set(ctx, "ro.x", "1")
	require.ErrorIs(t, err, types.ErrPermission)
	_, err = s.SetCount(ctx, "ro.x", 1)
	require.ErrorIs(t, err, types.ErrPermission)

	// reads stay allowed
	_, err = s.Get(ctx, "ro.x")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdate_ConfirmDeclined(t *testing.T) {
	ctx := context.Background()
	var asked []string
	s := newStore(t, func(c *Config) {
		c.Confirm = func(name string) bool {
			asked = append(asked, name)
			return false
		}
	})

	_, err := s.Set(ctx, "persist.sys.locale", "en-US")
	require.ErrorIs(t, err, trie.ErrDeclined)
	require.True(t, types.IsKind(err, types.ErrKindNotFound))
	require.Equal(t, []string{"persist.sys.locale"}, asked)

	_, err = s.Get(ctx, "persist.sys.locale")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdate_ValueAndCount(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	v := "on"

	res, err := s.Update(ctx, "persist.feature", &v, 7)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, uint32(7), res.Count())
	require.Equal(t, "on", res.Value)

	// unset count never changes the counter
	res, err = s.Update(ctx, "persist.feature", &v, format.CountUnset)
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, uint32(7), res.Count())

	// count alone
	res, err = s.Update(ctx, "persist.feature", nil, 8)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, "on", res.Value)
	require.Equal(t, uint32(8), res.Count())
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for name, v := range map[string]string{
		"ro.c":            "3",
		"ro.a":            "1",
		"vendor.b":        "2",
		"persist.x":       "x",
		"ro.debug.enable": "0",
	} {
		_, err := s.Set(ctx, name, v)
		require.NoError(t, err)
	}

	recs, err := s.List(ctx, "ro.*")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "ro.a", recs[0].Name)
	require.Equal(t, "ro.c", recs[1].Name)
	require.Equal(t, "ro.debug.enable", recs[2].Name)
	for _, r := range recs {
		require.Equal(t, labelSystem, r.Label)
	}

	recs, err = s.List(ctx, MatchAll)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	require.Equal(t, "persist.x", recs[0].Name)
	require.Equal(t, labelPersist, recs[0].Label)
	require.Equal(t, "vendor.b", recs[4].Name)
	require.Equal(t, labelDefault, recs[4].Label)

	recs, err = s.List(ctx, "*debug*")
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestList_NoLabels(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, func(c *Config) { c.WantLabels = false })
	_, err := s.Set(ctx, "ro.a", "1")
	require.NoError(t, err)

	recs, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Empty(t, recs[0].Label)
}

func TestDump_SkipsMissingRegion(t *testing.T) {
	dir := t.TempDir()
	contexts := testutil.WriteFile(t, dir, "property_contexts", "ro. "+labelSystem+"\n* "+labelDefault+"\n")
	root := filepath.Join(dir, "regions")
	testutil.WriteBlankRegion(t, root, labelDefault)
	s, err := New(Config{Root: root, SDK: 30, LabelFiles: []string{contexts}, IsPrivileged: func() bool { return true }})
	require.NoError(t, err)

	_, err = s.Set(context.Background(), "sys.x", "1")
	require.NoError(t, err)

	recs, err := s.Dump(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestDump_Cancelled(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Dump(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSetCount_Glob(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, n := range []string{"ro.a", "ro.b", "persist.c"} {
		_, err := s.Set(ctx, n, "v")
		require.NoError(t, err)
	}

	res, err := s.SetCount(ctx, "ro.*", 42)
	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, r := range res {
		require.True(t, r.Changed)
		require.Equal(t, uint32(42), r.Count())
	}

	got, err := s.Get(ctx, "persist.c")
	require.NoError(t, err)
	require.Zero(t, got.Count())

	// already at 42
	res, err = s.SetCount(ctx, "ro.*", 42)
	require.NoError(t, err)
	for _, r := range res {
		require.False(t, r.Changed)
	}
}

func TestLegacyLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	contexts := testutil.WriteFile(t, dir, "property_contexts", "boot. "+labelSystem+"\n* "+labelDefault+"\n")
	region := testutil.WriteBlankRegion(t, dir, "__properties__")

	s, err := New(Config{
		Root:         region,
		SDK:          23,
		LabelFiles:   []string{contexts},
		WantLabels:   true,
		IsPrivileged: func() bool { return true },
	})
	require.NoError(t, err)
	require.True(t, s.Config().Legacy())

	res, err := s.Set(ctx, "ro.boot.mode", "normal")
	require.NoError(t, err)
	require.Equal(t, labelSystem, res.Label)

	_, err = s.Set(ctx, "net.dns1", "8.8.8.8")
	require.NoError(t, err)

	recs, err := s.List(ctx, "**")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "net.dns1", recs[0].Name)
	require.Equal(t, labelDefault, recs[0].Label)
	require.Equal(t, "ro.boot.mode", recs[1].Name)
	require.Equal(t, labelSystem, recs[1].Label)

	st, err := s.Inspect("")
	require.NoError(t, err)
	require.Equal(t, 2, st.Records)
	require.Equal(t, region, st.Path)
}

func TestRegionPath(t *testing.T) {
	s := newStore(t)
	p, err := s.RegionPath(labelDefault)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(s.Config().Root, labelDefault), p)

	for _, bad := range []string{"", "..", "a/b"} {
		_, err := s.RegionPath(bad)
		require.True(t, types.IsKind(err, types.ErrKindFormat), bad)
	}
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.Set(ctx, "ro.a", "1")
	require.NoError(t, err)
	_, err = s.Set(ctx, "ro.b", "2")
	require.NoError(t, err)

	st, err := s.Inspect(labelSystem)
	require.NoError(t, err)
	require.Equal(t, 2, st.Records)
	require.Equal(t, labelSystem, st.Label)
	require.Equal(t, uint32(format.AreaMagic), st.Header.Magic)
	require.Equal(t, st.Header.Capacity-st.Header.BytesUsed, st.Free)

	st2, err := s.Inspect(st.Path)
	require.NoError(t, err)
	require.Equal(t, st.Records, st2.Records)
	require.Empty(t, st2.Label)
}

func TestValidateValue(t *testing.T) {
	require.NoError(t, ValidateValue(""))
	require.NoError(t, ValidateValue(strings.Repeat("v", format.ValueMax-1)))
	require.True(t, types.IsKind(ValidateValue(strings.Repeat("v", format.ValueMax)), types.ErrKindValidation))
	require.True(t, types.IsKind(ValidateValue("ab\x00cd"), types.ErrKindValidation))
}

func TestSet_RejectsNUL(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.Set(ctx, "ro.x", "ab")
	require.NoError(t, err)

	_, err = s.Set(ctx, "ro.x", "ab\x00cd")
	require.True(t, types.IsKind(err, types.ErrKindValidation))

	got, err := s.Get(ctx, "ro.x")
	require.NoError(t, err)
	require.Equal(t, "ab", got.Value)
	require.Equal(t, 2, got.Serial.ValueLen())
}

func TestUpdate_BadNameBeforeIO(t *testing.T) {
	ctx := context.Background()
	bad := []string{"ro..x", "ro.x.", ".ro.x", "nodot", "", "ro.*", "all"}

	// the root points at a directory, so any region open would fail
	// with something other than a validation error
	legacy := newStore(t, func(c *Config) {
		c.SDK = 23
		c.Root = t.TempDir()
	})
	perLabel := newStore(t)

	for _, s := range []*Store{legacy, perLabel} {
		for _, name := range bad {
			_, err := s.Set(ctx, name, "1")
			require.True(t, types.IsKind(err, types.ErrKindValidation), "set %q: %v", name, err)
			_, err = s.Get(ctx, name)
			require.True(t, types.IsKind(err, types.ErrKindValidation), "get %q: %v", name, err)
		}
	}
}

func TestSetCount_GlobUnprivileged(t *testing.T) {
	ctx := context.Background()
	privileged := true
	s := newStore(t, func(c *Config) { c.IsPrivileged = func() bool { return privileged } })
	for _, n := range []string{"ro.a", "ro.b"} {
		_, err := s.Set(ctx, n, "v")
		require.NoError(t, err)
	}

	privileged = false
	res, err := s.SetCount(ctx, "ro.*", 3)
	require.Empty(t, res)
	require.ErrorIs(t, err, types.ErrPermission)
	// a single permission error, not one per record
	require.Len(t, multierr.Errors(err), 1)

	got, err := s.Get(ctx, "ro.a")
	require.NoError(t, err)
	require.Zero(t, got.Count())
}
