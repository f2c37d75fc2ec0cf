// Collection of translations plus an id->translations index (component G)

package translate

// File is an ordered list of translations in declaration order, plus a secondary id->list index
// used for lookup and shadowing. Index entries borrow (do not own) the translations.
type File struct {
	Translations []*Translation
	index        map[string][]*Translation

	//NoDescription records ids that were declared with `no_description`: deliberately absent,
	//parsed and kept only so a caller can distinguish "no description" from "unknown id".
	NoDescription map[string]bool

	Diagnostics []error //Warnings collected while parsing/merging this file
}

func newFile() *File {
	return &File{
		index:         make(map[string][]*Translation),
		NoDescription: make(map[string]bool),
	}
}

// ByID returns the current bucket of translations that declare id, in discovery order. Callers
// must not mutate the returned slice.
func (f *File) ByID(id string) []*Translation {
	return f.index[id]
}

// LanguageNames returns the set of distinct language bundle names declared across every
// translation in f, in first-seen order. Used to resolve a requested BCP-47 tag against the
// languages f actually has data for (component K).
func (f *File) LanguageNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range f.Translations {
		for _, b := range t.Languages {
			if !seen[b.Name] {
				seen[b.Name] = true
				names = append(names, b.Name)
			}
		}
	}
	return names
}

// addTranslation appends t to the ordered list and indexes it under every id it declares,
// without running the shadowing rule (used during initial parse). Duplicates within a single
// file are not detected: every translation is kept and indexed, and no diagnostic is recorded.
func (f *File) addTranslation(t *Translation) {
	t.hash = computeHash(t)
	f.Translations = append(f.Translations, t)
	for _, id := range t.Ids {
		f.index[id] = append(f.index[id], t)
	}
}

// merge appends other's translations into f, applying the shadowing rule from spec.md §4.G:
//   - structurally identical to an existing translation under a shared id -> no-op
//   - same ids tuple as an existing one, but different content -> replace (later wins)
//   - different ids tuple, but id collides across distinct translations -> append + warn
//
// Diagnostics collected during the merge are appended to f.Diagnostics, never aborting the
// merge — shadowing conflicts are always recoverable.
func (f *File) merge(other *File) {
	for name := range other.NoDescription {
		f.NoDescription[name] = true
	}

	for _, t := range other.Translations {
		f.mergeTranslation(t)
	}
}

func (f *File) mergeTranslation(t *Translation) {
	//Find an existing translation to compare against, scanning every id t declares.
	for _, id := range t.Ids {
		for _, existing := range f.index[id] {
			if existing.structurallyEqual(t) {
				return //No-op: identical translation already present.
			}
			if existing.sameIdTuple(t) {
				f.replaceTranslation(existing, t)
				return
			}
		}
	}

	//No id-tuple match found anywhere: append and record the potential ambiguity per id.
	f.Translations = append(f.Translations, t)
	for _, id := range t.Ids {
		if len(f.index[id]) > 0 {
			f.Diagnostics = append(f.Diagnostics, newDiag(DK_DuplicateIdentifier, "", 0,
				"id %q is now bound to multiple translations with different id tuples", id))
		}
		f.index[id] = append(f.index[id], t)
	}
}

// replaceTranslation implements "later declaration shadows earlier" for two translations that
// share an id tuple: old is removed from the ordered list and from every index bucket it
// occupied, and newT takes its place.
func (f *File) replaceTranslation(old, newT *Translation) {
	for i, cur := range f.Translations {
		if cur == old {
			f.Translations = append(f.Translations[:i:i], f.Translations[i+1:]...)
			break
		}
	}
	for _, id := range old.Ids {
		bucket := f.index[id]
		for i, cur := range bucket {
			if cur == old {
				bucket = append(bucket[:i:i], bucket[i+1:]...)
				break
			}
		}
		f.index[id] = bucket
	}

	f.Translations = append(f.Translations, newT)
	for _, id := range newT.Ids {
		f.index[id] = append(f.index[id], newT)
	}
}
