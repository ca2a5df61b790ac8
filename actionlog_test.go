package ocflkit_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/ocflkit/ocflkit"
)

func TestActionLogRecord(t *testing.T) {
	is := is.New(t)
	log := ocflkit.NewActionLog()
	log.Record(ocflkit.ActionAdd, "d1", "a.txt")
	log.Record(ocflkit.ActionAdd, "d1", "b.txt")
	log.Record(ocflkit.ActionAdd, "d1", "a.txt") // duplicate pair is a no-op
	log.Record(ocflkit.ActionDelete, "d2", "c.txt")

	is.Equal(log.Actions(ocflkit.ActionAdd), ocflkit.DigestMap{"d1": {"a.txt", "b.txt"}})
	is.Equal(log.Actions(ocflkit.ActionDelete), ocflkit.DigestMap{"d2": {"c.txt"}})
	is.Equal(log.Actions(ocflkit.ActionMove), nil)
	is.Equal(log.Len(), 3)
}

func TestActionLogFixity(t *testing.T) {
	is := is.New(t)
	log := ocflkit.NewActionLog()
	// fixity structure only exists once something is recorded
	is.Equal(log.Fixity(), nil)
	log.RecordFixity("md5", "d1", "md5digest1")
	log.RecordFixity("md5", "d2", "md5digest2")
	log.RecordFixity("sha1", "d1", "sha1digest1")
	fixity := log.Fixity()
	is.Equal(len(fixity), 2)
	is.Equal(fixity["md5"], ocflkit.DigestMap{
		"d1": {"md5digest1"},
		"d2": {"md5digest2"},
	})
}

func TestActionLogZeroValue(t *testing.T) {
	is := is.New(t)
	var log ocflkit.ActionLog
	log.Record(ocflkit.ActionUpdate, "d1", "a.txt")
	is.Equal(log.Len(), 1)
}
