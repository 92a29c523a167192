package taxonomy

import "testing"

func TestTablesAreConsistent(t *testing.T) {
	seen := map[string]struct{}{}
	for _, c := range Categories() {
		if !ValidLevel(c) {
			t.Fatalf("malformed category: %+v", c)
		}
		if _, dup := seen[c.ID]; dup {
			t.Fatalf("duplicate category id %s", c.ID)
		}
		seen[c.ID] = struct{}{}

		for _, s := range SegmentsOf(c.ID) {
			if !ValidLevel(s) {
				t.Fatalf("malformed segment: %+v", s)
			}
			if _, dup := seen[s.ID]; dup {
				t.Fatalf("duplicate segment id %s", s.ID)
			}
			seen[s.ID] = struct{}{}

			for _, n := range NichesOf(s.ID) {
				if !ValidLevel(n) {
					t.Fatalf("malformed niche: %+v", n)
				}
				if _, dup := seen[n.ID]; dup {
					t.Fatalf("duplicate niche id %s", n.ID)
				}
				seen[n.ID] = struct{}{}
			}
		}
	}
}

func TestEverySegmentHasAKnownParent(t *testing.T) {
	for _, id := range SegmentIDs() {
		_, catID, ok := LookupSegment(id)
		if !ok {
			t.Fatalf("SegmentIDs listed unknown segment %s", id)
		}
		if _, ok := LookupCategory(catID); !ok {
			t.Fatalf("segment %s points at unknown category %s", id, catID)
		}
	}
}

func TestValidPath(t *testing.T) {
	cases := []struct {
		cat, seg, niche string
		want            bool
	}{
		{"tech", "tech-ai", "", true},
		{"tech", "tech-ai", "tech-ai-algorithm", true},
		{"finance", "tech-ai", "", false},                    // segment under wrong category
		{"tech", "tech-ai", "tech-software-backend", false},  // niche under wrong segment
		{"tech", "no-such-segment", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		if got := ValidPath(tc.cat, tc.seg, tc.niche); got != tc.want {
			t.Fatalf("ValidPath(%q,%q,%q) = %v, want %v", tc.cat, tc.seg, tc.niche, got, tc.want)
		}
	}
}

func TestResolvePath_FillsLabels(t *testing.T) {
	p, ok := ResolvePath("tech", "tech-ai", "tech-ai-application")
	if !ok {
		t.Fatal("expected valid path")
	}
	if p.Category.Label == "" || p.Segment.Label == "" {
		t.Fatalf("labels not filled: %+v", p)
	}
	if p.Niche == nil || p.Niche.Label == "" {
		t.Fatalf("niche not resolved: %+v", p.Niche)
	}

	p2, ok := ResolvePath("tech", "tech-ai", "")
	if !ok || p2.Niche != nil {
		t.Fatalf("two-level path mishandled: ok=%v niche=%+v", ok, p2.Niche)
	}
}

func TestFallbackPath(t *testing.T) {
	p := FallbackPath()
	if p.Category.ID != FallbackCategoryID || p.Segment.ID != FallbackSegmentID {
		t.Fatalf("fallback path = %s/%s", p.Category.ID, p.Segment.ID)
	}
	if p.Category.Label == "" || p.Segment.Label == "" {
		t.Fatal("fallback labels missing")
	}
}

func TestAccessorsCopyTables(t *testing.T) {
	cats := Categories()
	cats[0].ID = "mutated"
	if Categories()[0].ID == "mutated" {
		t.Fatal("Categories leaked internal slice")
	}

	segs := SegmentsOf("tech")
	segs[0].ID = "mutated"
	if SegmentsOf("tech")[0].ID == "mutated" {
		t.Fatal("SegmentsOf leaked internal slice")
	}
}
