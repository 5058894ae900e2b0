package env

import "testing"

func TestGetFirstEnv(t *testing.T) {
	t.Setenv("STATIC_SERVER_TEST_A", "")
	t.Setenv("STATIC_SERVER_TEST_B", "production")
	t.Setenv("STATIC_SERVER_TEST_C", "staging")

	value, ok := GetFirstEnv("STATIC_SERVER_TEST_A", "STATIC_SERVER_TEST_B", "STATIC_SERVER_TEST_C")
	if !ok || value != "production" {
		t.Errorf("got %q and %t, expected %q and true", value, ok, "production")
	}

	if value, ok := GetFirstEnv("STATIC_SERVER_TEST_A"); ok || value != "" {
		t.Errorf("got %q and %t, expected no value", value, ok)
	}
}
