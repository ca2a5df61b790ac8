package ocflkit

// ActionKind names a staged inventory operation.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionUpdate ActionKind = "update"
	ActionCopy   ActionKind = "copy"
	ActionMove   ActionKind = "move"
	ActionDelete ActionKind = "delete"
)

// ActionLog accumulates intended add/update/copy/move/delete operations,
// keyed by digest, without touching an Inventory. Callers use it to stage a
// batch of changes before committing them or to produce a change report.
// There is no rollback: start a new ActionLog to reset.
type ActionLog struct {
	actions map[ActionKind]DigestMap
	fixity  map[string]DigestMap
}

// NewActionLog returns a new empty ActionLog.
func NewActionLog() *ActionLog {
	return &ActionLog{actions: map[ActionKind]DigestMap{}}
}

// Record stages an operation of the given kind for the digest/path pair.
// Recording the same pair twice for a kind is a no-op.
func (log *ActionLog) Record(kind ActionKind, digest string, name string) {
	if log.actions == nil {
		log.actions = map[ActionKind]DigestMap{}
	}
	if log.actions[kind] == nil {
		log.actions[kind] = DigestMap{}
	}
	log.actions[kind].Add(digest, name)
}

// RecordFixity stages an alternate-algorithm digest for a path already known
// under the primary digest. The fixity structure is created on first use.
func (log *ActionLog) RecordFixity(alg string, digest string, altDigest string) {
	if log.fixity == nil {
		log.fixity = map[string]DigestMap{}
	}
	if log.fixity[alg] == nil {
		log.fixity[alg] = DigestMap{}
	}
	log.fixity[alg].Add(digest, altDigest)
}

// Actions returns all staged operations of the given kind.
func (log *ActionLog) Actions(kind ActionKind) DigestMap {
	return log.actions[kind]
}

// Fixity returns all staged fixity values.
func (log *ActionLog) Fixity() map[string]DigestMap {
	return log.fixity
}

// Len returns the total number of staged digest/path pairs, not counting
// fixity entries.
func (log *ActionLog) Len() int {
	var n int
	for _, m := range log.actions {
		n += m.NumPaths()
	}
	return n
}
