package remittest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/store/iavl"
)

// CommitKVStore opens an iavl store in a fresh temporary directory, the
// same engine remitd runs on. Call cleanup to close it and remove the
// files.
func CommitKVStore(t testing.TB) (remit.CommitKVStore, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "remittest")
	if err != nil {
		t.Fatalf("temp dir: %s", err)
	}
	db := iavl.NewCommitStore(dir, "db")
	cleanup := func() {
		db.Close()
		_ = os.RemoveAll(dir)
	}
	return db, cleanup
}
