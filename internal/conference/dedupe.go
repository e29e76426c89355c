package conference

// Dedupe drops records with empty names and any record whose name or ID was
// already kept, assigning IDs along the way. First-seen order is preserved.
func Dedupe(records []*Record) []*Record {
	seenNames := make(map[string]bool)
	seenIDs := make(map[string]bool)
	unique := make([]*Record, 0, len(records))

	for _, rec := range records {
		if rec == nil || rec.Name == "" {
			continue
		}
		rec.ID = GenerateID(rec.Name)
		if seenNames[rec.Name] || seenIDs[rec.ID] {
			continue
		}
		seenNames[rec.Name] = true
		seenIDs[rec.ID] = true
		unique = append(unique, rec)
	}

	return unique
}
