package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/Sirupsen/logrus.v0"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	t.Cleanup(func() {
		DisableDebugModules(ModuleMaskAll)
		disabled = false
	})
	return buf
}

func TestModuleByName(t *testing.T) {
	for _, name := range ModuleNames() {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Fatalf("ModuleByName(%q) not found", name)
		}
		if mod.String() != name {
			t.Errorf("ModuleByName(%q).String() = %q", name, mod.String())
		}
	}

	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("ModuleByName(\"nope\") should fail")
	}
}

func TestDisabledEntryZIsNil(t *testing.T) {
	captureOutput(t)

	z := ModPSG.DebugZ("hidden")
	if z != nil {
		t.Fatalf("DebugZ on disabled module = %v, want nil", z)
	}

	// All builders are nil-safe.
	z.Int("a", 1).Float("b", 2).Bool("c", true).Error("d", errors.New("e")).End()
}

func TestEntryZFields(t *testing.T) {
	buf := captureOutput(t)

	EnableDebugModules(ModPSG.Mask())
	ModPSG.DebugZ("set tone").Int("period", 440).Hex8("reg", 0x0f).Float("pan", 0.5).End()

	out := buf.String()
	for _, want := range []string{"set tone", "period=440", "reg=0f", "pan=0.5", "_mod=psg"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestWarnAlwaysOn(t *testing.T) {
	buf := captureOutput(t)

	ModConfig.WarnZ("careful").String("key", "value").End()
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("warning not logged: %q", buf.String())
	}

	buf.Reset()
	Disable()
	ModConfig.Warnf("quiet %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Disable() did not silence warnings: %q", buf.String())
	}
}

func TestInfofNeedsModule(t *testing.T) {
	buf := captureOutput(t)

	ModConfig.Infof("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("info logged without enabling the module: %q", buf.String())
	}

	EnableDebugModules(ModConfig.Mask())
	ModConfig.Infof("shown %d", 2)
	ModSnapshot.Infof("other %d", 3)

	out := buf.String()
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "_mod=config") {
		t.Errorf("log output %q lacks the config module info", out)
	}
	if strings.Contains(out, "other 3") {
		t.Errorf("log output %q contains info of a module not enabled", out)
	}
}
