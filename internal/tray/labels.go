package tray

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	labelOpen = "Open Toolbox"
	labelQuit = "Quit Toolbox"
)

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supported)

func init() {
	mustSetString(language.SimplifiedChinese, labelOpen, "打开工具箱")
	mustSetString(language.SimplifiedChinese, labelQuit, "退出工具箱")
}

func mustSetString(tag language.Tag, key, msg string) {
	if err := message.SetString(tag, key, msg); err != nil {
		panic(fmt.Sprintf("register %s label %q: %v", tag, key, err))
	}
}

// Locale picks the supported language closest to configured, falling back
// to the LANG and LC_ALL environment and then English.
func Locale(configured string) language.Tag {
	prefs := []string{configured, os.Getenv("LC_ALL"), os.Getenv("LANG")}
	for i, p := range prefs {
		prefs[i] = posixToBCP47(p)
	}
	_, idx := language.MatchStrings(matcher, prefs...)
	return supported[idx]
}

// Printer returns a message printer for the locale chosen by Locale.
func Printer(configured string) *message.Printer {
	return message.NewPrinter(Locale(configured))
}

// posixToBCP47 turns "zh_CN.UTF-8" into "zh-CN".
func posixToBCP47(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
