package translate

import "testing"

func TestMergeNoOpOnStructurallyIdenticalTranslation(t *testing.T) {
	base := mustParse(t, `description
1 x
1
# "same text"
`)
	identical := mustParse(t, `description
1 x
1
# "same text"
`)
	base.merge(identical)

	if len(base.Translations) != 1 {
		t.Fatalf("expected merge of identical translation to be a no-op, got %d translations", len(base.Translations))
	}
	for _, d := range base.Diagnostics {
		if IsKind(d, DK_DuplicateIdentifier) {
			t.Fatalf("did not expect a DuplicateIdentifier diagnostic for an identical merge")
		}
	}
}

func TestMergeAppendsAndWarnsOnSharedIdDifferentTuple(t *testing.T) {
	base := mustParse(t, `description
1 x
1
# "about x alone"
`)
	other := mustParse(t, `description
2 x y
1
# # "about x and y"
`)
	base.merge(other)

	if len(base.Translations) != 2 {
		t.Fatalf("expected both translations to be retained, got %d", len(base.Translations))
	}
	if len(base.ByID("x")) != 2 {
		t.Fatalf("expected id x to now be bound to 2 translations, got %d", len(base.ByID("x")))
	}

	found := false
	for _, d := range base.Diagnostics {
		if IsKind(d, DK_DuplicateIdentifier) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DuplicateIdentifier diagnostic")
	}
}

func TestIncludeWithoutCacheOrBaseDirWarns(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "%1%"

include "other.txt"
`)
	found := false
	for _, d := range f.Diagnostics {
		if IsKind(d, DK_UnresolvedInclude) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an UnresolvedInclude diagnostic, got %v", f.Diagnostics)
	}
}
