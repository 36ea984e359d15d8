package helpers

import "testing"

func TestNewESClientRequiresAddresses(t *testing.T) {
	if _, err := NewESClient(ESOptions{}); err == nil {
		t.Fatal("expected an error without addresses")
	}
	es, err := NewESClient(ESOptions{Addrs: []string{"http://127.0.0.1:9200"}})
	if err != nil || es == nil {
		t.Fatalf("unexpected result: %v", err)
	}
}
