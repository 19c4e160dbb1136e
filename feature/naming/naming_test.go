package naming

import (
	"errors"
	"path/filepath"
	"testing"

	"tablet-ingest/core/serial"
	"tablet-ingest/core/team"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInventory_Kitkit tests every KITKIT file naming convention.
func TestInventory_Kitkit(t *testing.T) {
	rules, err := Inventory(team.TeamKitkit)
	require.NoError(t, err)

	tests := []struct {
		base     string
		rule     string
		kind     Kind
		serial   serial.Number
		archived bool
	}{
		{"5A27001661_log_1.txt", "kitkit-numbered-log", KindJSONLines, "5A27001661", false},
		{"com_enuma_booktest.6115000540.lastlog.txt", "kitkit-booktest", KindJSONLines, "6115000540", false},
		{"com_enuma_xprize.5A23001564.lastlog.txt", "kitkit-xprize", KindJSONLines, "5A23001564", false},
		{"com_enuma_xprize.6116002162.A.log.zip", "kitkit-xprize", KindJSONLines, "6116002162", true},
		{"library_todoschool_enuma_com_todoschoollibrary.6111001905.lastlog.txt", "kitkit-library", KindJSONLines, "6111001905", false},
		{"todoschoollauncher_enuma_com_todoschoollauncher.5A23001564.lastlog.txt", "kitkit-launcher", KindJSONLines, "5A23001564", false},
		{"6114000050_user0.zip", "kitkit-user-archive", KindMarker, "6114000050", true},
		{"5A28000934_.aux.zip", "kitkit-aux-archive", KindMarker, "5A28000934", true},
		{"crashlog.com_enuma_todoschoollockscreen.txt", "kitkit-crashlog", KindIgnored, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			a, err := rules.Classify(filepath.Join("2018-05-25", "57", "REMOTE", tt.base), false)
			require.NoError(t, err)
			assert.Equal(t, tt.rule, a.Rule)
			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, tt.serial, a.Serial)
			assert.Equal(t, tt.archived, a.Archived)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	rules, err := Inventory(team.TeamKitkit)
	require.NoError(t, err)

	_, err = rules.Classify("57/REMOTE/readme.md", false)
	assert.True(t, errors.Is(err, ErrUnrecognized))
	assert.False(t, IsFatal(err))
}

// TestClassify_StrictInvalid tests that a strict convention with a broken serial is fatal.
func TestClassify_StrictInvalid(t *testing.T) {
	rules, err := Inventory(team.TeamKitkit)
	require.NoError(t, err)

	_, err = rules.Classify("com_enuma_xprize.zz23001564.lastlog.txt", false)
	assert.True(t, IsFatal(err))
	assert.True(t, errors.Is(err, serial.ErrInvalid))
	assert.Contains(t, err.Error(), "zz23001564")
}

func TestInventory_Robotutor(t *testing.T) {
	rules, err := Inventory(team.TeamRobotutor)
	require.NoError(t, err)

	a, err := rules.Classify("CRASH_20180823_142312_6116002162_robotutor.txt", false)
	require.NoError(t, err)
	assert.Equal(t, serial.Number("6116002162"), a.Serial)

	a, err = rules.Classify("activity_20180823_142312_6116002163.json", false)
	require.NoError(t, err)
	assert.Equal(t, serial.Number("6116002163"), a.Serial)
}

func TestInventory_Onebillion(t *testing.T) {
	rules, err := Inventory(team.TeamOnebillion)
	require.NoError(t, err)

	tests := []struct {
		base    string
		segment string
		serial  serial.Number
	}{
		{"80a589fd41_2017_12_24_12_23_29.db", "80a589fd41", ""},
		{"80a5896b547_2018_02_28_10_25_09.db", "80a5896b547", ""},
		{"80a589ae9551_2018_03_05_09_46_10.db", "80a589ae9551", ""},
		{"5A29000653_2018_03_19_07_12_18.db", "5A29000653", "5A29000653"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			a, err := rules.Classify(tt.base, false)
			require.NoError(t, err)
			assert.True(t, a.Legacy)
			assert.Equal(t, KindRelational, a.Kind)
			assert.Equal(t, tt.segment, a.Segment)
			assert.Equal(t, tt.serial, a.Serial)
		})
	}
}

// TestInventory_Chimple tests directory-based identification and the lenient skip.
func TestInventory_Chimple(t *testing.T) {
	rules, err := Inventory(team.TeamChimple)
	require.NoError(t, err)

	a, err := rules.Classify(filepath.Join("29", "REMOTE", "5A27001390"), true)
	require.NoError(t, err)
	assert.Equal(t, serial.Number("5A27001390"), a.Serial)

	_, err = rules.Classify(filepath.Join("29", "REMOTE"), true)
	assert.Error(t, err)
	assert.False(t, IsFatal(err))

	_, err = rules.Classify(filepath.Join("29", "REMOTE", "5A27001390", "userlog.1.csv"), false)
	assert.True(t, errors.Is(err, ErrUnrecognized))
}

func TestEvents(t *testing.T) {
	rules, err := Events(team.TeamChimple, Storybooks)
	require.NoError(t, err)

	a, err := rules.Classify(filepath.Join("29", "REMOTE", "5A27001390", "userlog.1548797314282.csv"), false)
	require.NoError(t, err)
	assert.Equal(t, KindDelimited, a.Kind)
	assert.Equal(t, serial.Number("5A27001390"), a.Serial)

	_, err = rules.Classify(filepath.Join("29", "REMOTE", "6116001424", "crash.1545399083405.report"), false)
	assert.True(t, errors.Is(err, ErrUnrecognized))

	rules, err = Events(team.TeamKitkit, Videos)
	require.NoError(t, err)
	a, err = rules.Classify("library_todoschool_enuma_com_todoschoollibrary.6118002503.A.log.zip", false)
	require.NoError(t, err)
	assert.True(t, a.Archived)

	_, err = Events(team.TeamChimple, Videos)
	assert.Error(t, err)
	_, err = Events(team.TeamRobotutor, Storybooks)
	assert.Error(t, err)
	_, err = Inventory(team.TeamCCI)
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "json-lines", KindJSONLines.String())
	assert.Equal(t, "relational", KindRelational.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
