package avc

import "testing"

func TestCallbackMatchesWildcardsAndExactFilters(t *testing.T) {
	cb := Callback{FilterSsid: WildSID, FilterTsid: 2, FilterTclass: WildClass}

	cases := []struct {
		ssid, tsid SID
		tclass     Class
		want       bool
	}{
		{ssid: 1, tsid: 2, tclass: 5, want: true},
		{ssid: 99, tsid: 2, tclass: 5, want: true},
		{ssid: 1, tsid: 3, tclass: 5, want: false},
	}
	for _, c := range cases {
		if got := cb.matches(c.ssid, c.tsid, c.tclass); got != c.want {
			t.Errorf("matches(%d,%d,%d) = %v, want %v", c.ssid, c.tsid, c.tclass, got, c.want)
		}
	}
}

func TestCallbackTableRunResetCollectsFirstErrorButRunsAll(t *testing.T) {
	var tbl callbackTable
	calls := 0
	failing := Callback{
		Fn:           func(uint32) error { calls++; return errTestCallback },
		Events:       EventReset,
		FilterSsid:   WildSID,
		FilterTsid:   WildSID,
		FilterTclass: WildClass,
	}
	ok := Callback{
		Fn:           func(uint32) error { calls++; return nil },
		Events:       EventReset,
		FilterSsid:   WildSID,
		FilterTsid:   WildSID,
		FilterTclass: WildClass,
	}
	notSubscribed := Callback{
		Fn:           func(uint32) error { t.Fatal("should not be called: not subscribed to EventReset"); return nil },
		Events:       0,
		FilterSsid:   WildSID,
		FilterTsid:   WildSID,
		FilterTclass: WildClass,
	}

	tbl.Add(failing)
	tbl.Add(ok)
	tbl.Add(notSubscribed)

	err := tbl.RunReset(7)
	if err != errTestCallback {
		t.Fatalf("RunReset() error = %v, want %v", err, errTestCallback)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (both EventReset subscribers ran)", calls)
	}
}

type testCallbackError string

func (e testCallbackError) Error() string { return string(e) }

var errTestCallback = testCallbackError("callback failed")
