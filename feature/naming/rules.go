package naming

import (
	"fmt"

	"tablet-ingest/core/team"
)

// ContentType selects the usage events to extract.
type ContentType string

const (
	// Storybooks are reading sessions.
	Storybooks ContentType = "storybook"
	// Videos are video playback sessions.
	Videos ContentType = "video"
)

const (
	kitkitLibrary  = "library_todoschool_enuma_com_todoschoollibrary."
	kitkitLauncher = "todoschoollauncher_enuma_com_todoschoollauncher."
	kitkitBooktest = "com_enuma_booktest."
	kitkitXprize   = "com_enuma_xprize."

	// "_2018_03_19_07_12_18.db" follows the identifier in database file names
	dbTimestampLen = 23
)

var kitkitLibraryRule = Rule{
	Name:    "kitkit-library",
	Kind:    KindJSONLines,
	Strict:  true,
	Match:   Prefix(kitkitLibrary),
	Segment: Slice(len(kitkitLibrary), len(kitkitLibrary)+10),
}

var onebillionDBRule = Rule{
	Name:    "onebillion-db",
	Kind:    KindRelational,
	Strict:  true,
	Legacy:  true,
	Match:   Suffix(".db"),
	Segment: WithoutSuffixLen(dbTimestampLen),
}

var chimpleUserlogRule = Rule{
	Name:    "chimple-userlog",
	Kind:    KindDelimited,
	Match:   Prefix("userlog."),
	Segment: ParentName,
}

// Inventory returns the rules that identify uploading tablets for a team.
func Inventory(name string) (RuleSet, error) {
	switch name {
	case team.TeamKitkit:
		return RuleSet{
			{Name: "kitkit-numbered-log", Kind: KindJSONLines, Strict: true, Match: ContainsAndSuffix("_log_", ".txt"), Segment: Slice(0, 10)},
			{Name: "kitkit-booktest", Kind: KindJSONLines, Strict: true, Match: Prefix(kitkitBooktest), Segment: Slice(len(kitkitBooktest), len(kitkitBooktest)+10)},
			{Name: "kitkit-xprize", Kind: KindJSONLines, Strict: true, Match: Prefix(kitkitXprize), Segment: Slice(len(kitkitXprize), len(kitkitXprize)+10)},
			kitkitLibraryRule,
			{Name: "kitkit-launcher", Kind: KindJSONLines, Strict: true, Match: Prefix(kitkitLauncher), Segment: Slice(len(kitkitLauncher), len(kitkitLauncher)+10)},
			{Name: "kitkit-user-archive", Kind: KindMarker, Strict: true, Match: ContainsAndSuffix("_user", ".zip"), Segment: Slice(0, 10)},
			{Name: "kitkit-aux-archive", Kind: KindMarker, Strict: true, Match: Suffix("_.aux.zip"), Segment: Slice(0, 10)},
			{Name: "kitkit-crashlog", Kind: KindIgnored, Match: Prefix("crashlog.")},
		}, nil
	case team.TeamRobotutor:
		return RuleSet{
			{Name: "robotutor-crash", Kind: KindMarker, Strict: true, Match: Prefix("CRASH_"), Segment: Slice(22, 32)},
			{Name: "robotutor-json", Kind: KindMarker, Strict: true, Match: Suffix(".json"), Segment: FromEnd(15, 5)},
		}, nil
	case team.TeamOnebillion:
		return RuleSet{onebillionDBRule}, nil
	case team.TeamChimple:
		return RuleSet{
			{Name: "chimple-device-dir", Kind: KindMarker, Dir: true, Match: Any, Segment: BaseName},
		}, nil
	default:
		return nil, fmt.Errorf("team %s has no inventory naming rules", name)
	}
}

// Events returns the rules that select usage-event artifacts for a team.
func Events(name string, content ContentType) (RuleSet, error) {
	switch {
	case name == team.TeamChimple && content == Storybooks:
		return RuleSet{chimpleUserlogRule}, nil
	case name == team.TeamKitkit:
		return RuleSet{kitkitLibraryRule}, nil
	case name == team.TeamOnebillion:
		return RuleSet{onebillionDBRule}, nil
	default:
		return nil, fmt.Errorf("team %s has no %s events", name, content)
	}
}
