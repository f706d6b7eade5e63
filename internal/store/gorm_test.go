package store_test

import (
	"testing"
	"time"

	"papertrade/internal/store"
	"papertrade/internal/testutil"
)

type payload struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestSaveAndLoad(t *testing.T) {
	st := testutil.SetupTestStore(t)

	saved := payload{Name: "abc", Count: 42}
	testutil.AssertNoError(t, st.Save("test-key", saved))

	var loaded payload
	found, err := st.Load("test-key", &loaded)
	testutil.AssertNoError(t, err)
	if !found {
		t.Fatal("expected record to be found")
	}
	if loaded != saved {
		t.Errorf("loaded %+v, want %+v", loaded, saved)
	}
}

func TestSaveOverwrites(t *testing.T) {
	st := testutil.SetupTestStore(t)

	testutil.AssertNoError(t, st.Save("test-key", payload{Name: "first", Count: 1}))
	testutil.AssertNoError(t, st.Save("test-key", payload{Name: "second", Count: 2}))

	var loaded payload
	found, err := st.Load("test-key", &loaded)
	testutil.AssertNoError(t, err)
	if !found || loaded.Name != "second" {
		t.Errorf("expected overwritten record, got found=%v %+v", found, loaded)
	}
}

func TestLoadMissingKey(t *testing.T) {
	st := testutil.SetupTestStore(t)

	var loaded payload
	found, err := st.Load("never-saved", &loaded)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected missing record to report not found")
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := store.NewGormStore(db)

	// Write raw bytes that cannot unmarshal into the target type.
	record := store.Record{Key: "bad-key", Data: []byte("{not json"), UpdatedAt: time.Now()}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed malformed record: %v", err)
	}

	var loaded payload
	found, err := st.Load("bad-key", &loaded)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("malformed record must be treated as missing")
	}
}

func TestDelete(t *testing.T) {
	st := testutil.SetupTestStore(t)

	testutil.AssertNoError(t, st.Save("test-key", payload{Name: "abc"}))
	testutil.AssertNoError(t, st.Delete("test-key"))

	var loaded payload
	found, err := st.Load("test-key", &loaded)
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected record to be gone after delete")
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	st := testutil.SetupTestStore(t)
	testutil.AssertNoError(t, st.Delete("never-saved"))
}
