package inicodec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/roach88/migrate-gse/internal/kvstore"
	"github.com/roach88/migrate-gse/internal/testutil"
)

// values flattens a section set to section → key → value.
func values(m *kvstore.Map) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, name := range m.Keys() {
		sec, _ := m.Sub(name)
		kv := make(map[string]string)
		for _, key := range sec.Keys() {
			e, _ := sec.Entry(key)
			kv[key] = e.Value
		}
		out[name] = kv
	}
	return out
}

func TestParse_Basic(t *testing.T) {
	got, err := Parse([]byte("[main::connectivity]\n# a comment\noffline=1\n\n[user::general]\nlanguage=french\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"main::connectivity", "user::general"}, got.Keys())
	e, ok := got.Entry("main::connectivity", "offline")
	require.True(t, ok)
	assert.Equal(t, kvstore.Entry{Value: "1"}, e, "comments are not recovered")
}

func TestParse_DropsDefaultSection(t *testing.T) {
	got, err := Parse([]byte("orphan=1\n[app::general]\nbuild_id=7\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"app::general"}, got.Keys())
}

func TestParse_RepeatedSectionsMerge(t *testing.T) {
	got, err := Parse([]byte("[app::dlcs]\n10=a\n\n[app::general]\nbuild_id=1\n\n[app::dlcs]\n20=b\n"))
	require.NoError(t, err)

	dlcs, ok := got.Sub("app::dlcs")
	require.True(t, ok)
	assert.Equal(t, []string{"10", "20"}, dlcs.Keys())
}

func TestParse_LiteralValues(t *testing.T) {
	input := "[app::paths]\n" +
		"1=C:\\Games\\Dir\\\n" +
		"2=name # not a comment\n" +
		"3=\"quoted\"\n" +
		"4=a=b\n" +
		"5=\n" +
		"; semicolon comment\n" +
		"6=x;y\n" +
		"7=`Deluxe` Soundtrack\n" +
		"8=`Unclosed\n" +
		"9=\"\"\"triple\n" +
		"10='single' and more\n"
	got, err := Parse([]byte(input))
	require.NoError(t, err)

	want := map[string]map[string]string{
		"app::paths": {
			"1":  `C:\Games\Dir\`,
			"2":  "name # not a comment",
			"3":  `"quoted"`,
			"4":  "a=b",
			"5":  "",
			"6":  "x;y",
			"7":  "`Deluxe` Soundtrack",
			"8":  "`Unclosed",
			"9":  `"""triple`,
			"10": "'single' and more",
		},
	}
	if diff := cmp.Diff(want, values(got)); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeyTakesLastValue(t *testing.T) {
	got, err := Parse([]byte("[main::general]\nsteam_deck=1\nnew_app_ticket=1\n\n[main::general]\nsteam_deck=0\n"))
	require.NoError(t, err)

	sec, ok := got.Sub("main::general")
	require.True(t, ok)
	assert.Equal(t, []string{"steam_deck", "new_app_ticket"}, sec.Keys(), "a repeated key keeps its position")
	e, _ := sec.Entry("steam_deck")
	assert.Equal(t, "0", e.Value)
}

func TestParse_ContinuationLines(t *testing.T) {
	got, err := Parse([]byte("[s]\nk=first\n  second\n\n  other = v \n\tindented=x\n"))
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]string{
		"s": {"k": "first\nsecond", "other": "v", "indented": "x"},
	}, values(got), "a blank line ends the value")
}

func TestParse_PreservesKeyCase(t *testing.T) {
	got, err := Parse([]byte("[overlay::appearance]\nFont_Size=16.0\n"))
	require.NoError(t, err)
	_, ok := got.Entry("overlay::appearance", "Font_Size")
	assert.True(t, ok)
}

func TestParse_MalformedLine(t *testing.T) {
	_, err := Parse([]byte("[sec]\nno delimiter here\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Empty(t, pe.Path)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Parse([]byte("[sec]\n = value\n"))
	require.True(t, errors.As(err, &pe))
}

func TestRoundTrip_QuotedLookingValues(t *testing.T) {
	orig := kvstore.New()
	dlcs := orig.Child("app::dlcs")
	for key, value := range map[string]string{
		"10": "`Deluxe` Soundtrack",
		"20": "`Unclosed",
		"30": `"""Artbook"""`,
		"40": `"Season Pass"`,
	} {
		dlcs.Set(key, kvstore.Entry{Value: value})
	}

	data, err := Marshal(orig)
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(values(orig), values(parsed)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Sample(t *testing.T) {
	orig := sampleSections()
	orig.Delete("overlay::appearance") // empty sections are not part of the contract

	data, err := Marshal(orig)
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(values(orig), values(parsed)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, orig.Keys(), parsed.Keys(), "section order survives")
}

// valuePattern draws values without surrounding blanks, the only thing the
// reader trims. Quote characters may lead or close a value.
var valuePattern = "([A-Za-z0-9_.:/\\\\\"'`\\[-]([A-Za-z0-9 _.:/\\\\#;=\"'`\\[\\]-]{0,12}[A-Za-z0-9_.\"'`\\]])?)?"

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		orig := kvstore.New()
		nSections := rapid.IntRange(1, 4).Draw(t, "sections")
		for i := 0; i < nSections; i++ {
			name := rapid.StringMatching(`[a-z]{1,6}::[a-z_]{1,10}`).Draw(t, "section")
			sec := orig.Child(name)
			nKeys := rapid.IntRange(1, 6).Draw(t, "keys")
			for j := 0; j < nKeys; j++ {
				key := rapid.StringMatching(`[A-Za-z0-9_]{1,10}`).Draw(t, "key")
				value := rapid.StringMatching(valuePattern).Draw(t, "value")
				comment := rapid.StringMatching(`[a-z ]{0,10}`).Draw(t, "comment")
				sec.Set(key, kvstore.Entry{Value: value, Comment: comment})
			}
		}

		data, err := Marshal(orig)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		parsed, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v\n%s", err, data)
		}
		if diff := cmp.Diff(values(orig), values(parsed)); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s\n%s", diff, data)
		}
	})
}

func TestParseFiles_LastValueWins(t *testing.T) {
	dir := testutil.SettingsDir(t, map[string]string{
		"a/configs.main.ini": "[main::general]\nsteam_deck=1\ncrash_printer_location=./a\n",
		"b/configs.main.ini": "[main::general]\nsteam_deck=0\nnew_app_ticket=1\n",
	})

	got, err := ParseFiles([]string{
		filepath.Join(dir, "a", "configs.main.ini"),
		filepath.Join(dir, "b", "configs.main.ini"),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]string{
		"main::general": {"steam_deck": "0", "crash_printer_location": "./a", "new_app_ticket": "1"},
	}, values(got), "files resolve duplicates the same way a single file does")
	sec, _ := got.Sub("main::general")
	assert.Equal(t, []string{"steam_deck", "crash_printer_location", "new_app_ticket"}, sec.Keys())
}

func TestParseFiles_Errors(t *testing.T) {
	dir := testutil.SettingsDir(t, map[string]string{"bad.ini": "[s]\nbroken\n"})

	_, err := ParseFiles([]string{filepath.Join(dir, "missing.ini")})
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ParseFiles([]string{filepath.Join(dir, "bad.ini")})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, filepath.Join(dir, "bad.ini"), pe.Path)
	assert.Contains(t, err.Error(), "bad.ini")
}

func TestFindFiles(t *testing.T) {
	dir := testutil.SettingsDir(t, map[string]string{
		"configs.main.ini":              "",
		"nested/deeper/configs.app.INI": "",
		"configs.user.ini.example":      "",
		"notes.txt":                     "",
		"steam_settings/offline.txt":    "",
	})

	got, err := FindFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "configs.main.ini"),
		filepath.Join(dir, "configs.user.ini.example"),
		filepath.Join(dir, "nested", "deeper", "configs.app.INI"),
	}, got)
}

func TestLoad(t *testing.T) {
	dir := testutil.SettingsDir(t, map[string]string{
		"configs.main.ini":        "[main::connectivity]\noffline=1\n",
		"sub/configs.overlay.ini": "[overlay::general]\nhook_delay_sec=5\n",
	})

	sections, paths, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.Equal(t, map[string]map[string]string{
		"main::connectivity": {"offline": "1"},
		"overlay::general":   {"hook_delay_sec": "5"},
	}, values(sections))
}

func TestLoad_MissingRoot(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent"))
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "scan", fe.Op)
}
