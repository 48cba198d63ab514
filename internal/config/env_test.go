package config

import "testing"

func TestGetEnvFallback(t *testing.T) {
	if got := GetEnv("INVADERS_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv unset = %q, want fallback", got)
	}
	t.Setenv("INVADERS_TEST_KEY", "value")
	if got := GetEnv("INVADERS_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("GetEnv set = %q, want value", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", " 42 ")
	if v, ok := GetEnvInt("INVADERS_TEST_INT", 7); !ok || v != 42 {
		t.Fatalf("GetEnvInt = (%d, %v), want (42, true)", v, ok)
	}

	t.Setenv("INVADERS_TEST_INT", "forty")
	if v, ok := GetEnvInt("INVADERS_TEST_INT", 7); ok || v != 7 {
		t.Fatalf("GetEnvInt bad value = (%d, %v), want (7, false)", v, ok)
	}
}

func TestGetEnvFloatAndBool(t *testing.T) {
	t.Setenv("INVADERS_TEST_FLOAT", "0.25")
	if v, ok := GetEnvFloat("INVADERS_TEST_FLOAT", 1); !ok || v != 0.25 {
		t.Fatalf("GetEnvFloat = (%f, %v), want (0.25, true)", v, ok)
	}

	t.Setenv("INVADERS_TEST_BOOL", "true")
	if v, ok := GetEnvBool("INVADERS_TEST_BOOL", false); !ok || !v {
		t.Fatalf("GetEnvBool = (%v, %v), want (true, true)", v, ok)
	}

	if v, ok := GetEnvBool("INVADERS_TEST_BOOL_UNSET", true); !ok || !v {
		t.Fatalf("GetEnvBool unset = (%v, %v), want fallback", v, ok)
	}
}
