package utils

import "sync"

var storeInstance *stringStoreImpl
var stringStoreInitializer sync.Once

// StringStore deduplicates small strings that repeat across a corpus, such as
// tag symbols. Corpus parsing produces substrings backed by whole input lines;
// interning them through the store releases the line buffers.
type StringStore interface {
	Get(s string) string

	// Lock freezes the store once all corpora are loaded so that rare
	// strings seen later do not grow it.
	Lock()
	IsLocked() bool
}

type stringStoreImpl struct {
	store    sync.Map // map[string]string
	isLocked bool
}

func (stringStore *stringStoreImpl) Get(s string) string {
	if !stringStore.isLocked {
		canonical, _ := stringStore.store.LoadOrStore(s, string([]byte(s)))
		return canonical.(string)
	}

	canonical, ok := stringStore.store.Load(s)
	if !ok {
		return string([]byte(s))
	}
	return canonical.(string)
}

func (stringStore *stringStoreImpl) Lock() {
	stringStore.isLocked = true
}

func (stringStore *stringStoreImpl) IsLocked() bool {
	return stringStore.isLocked
}

func GlobalStringStore() StringStore {
	stringStoreInitializer.Do(func() {
		storeInstance = new(stringStoreImpl)
	})

	return storeInstance
}
