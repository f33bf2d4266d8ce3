package cache

import (
	"strconv"
	"strings"
	"sync"
)

// Entry is one compile result deposited by a successful back-end
// dispatch (spec.md §4.7, §6). The root package's pipeline driver stores
// the emitted Slang source in Source and its per-target artifact map in
// Reflection; the stage's ShaderResources reflection record is not
// cached and is rebuilt by every compile call.
type Entry struct {
	Source     string
	Blob       []byte
	Reflection any // opaque to this package; the root package stores map[backend.Target]backend.Artifact here
}

// HardcodeManager is the persistent compile-result cache (spec.md §1,
// "the hardcode manager"): a keyed blob store guarded by a
// reader/writer lock, grounded on backend/native/pipeline_cache_core.go's
// double-check locking pattern. Concurrent reads are permitted;
// insertions acquire the exclusive lock, and the cache is updated only
// after a successful compilation (spec.md §7, "partial failures leave
// the cache untouched for that key").
type HardcodeManager struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewHardcodeManager creates an empty hardcode manager.
func NewHardcodeManager() *HardcodeManager {
	return &HardcodeManager{entries: make(map[string]Entry)}
}

// Key builds the cache key for one (stageName, itemKey) pair
// (spec.md §4.7/§6): itemKey already combines the transformed
// source-location string, the requested target language names, and an
// optional "_Bindless" suffix.
func Key(stageName, itemKey string) string {
	return stageName + ":" + itemKey
}

// TransformSourceLocation strips the project-root prefix from file and
// maps path separators, dots, and colons to underscores, matching
// spec.md §6's source-location keying rule.
func TransformSourceLocation(projectRoot, file string, line, column int) string {
	rel := strings.TrimPrefix(file, projectRoot)
	rel = strings.TrimPrefix(rel, "/")
	key := strings.NewReplacer("/", "_", ".", "_", ":", "_").Replace(rel)
	return key + "_" + strconv.Itoa(line) + "_" + strconv.Itoa(column)
}

// Get retrieves a previously-deposited entry. The fast path takes only
// the read lock, so concurrent lookups never block each other
// (spec.md §5, "concurrent reads are permitted").
func (m *HardcodeManager) Get(key string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok
}

// Put deposits a successful compilation result. Overwriting an existing
// key is allowed (a recompile of the same source location) and is not
// logged.
func (m *HardcodeManager) Put(key string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
}

// GetOrCompile returns the cached entry for key, or calls compile and
// deposits its result, using the double-check locking pattern: a read
// lock covers the common cache-hit path, and only a miss escalates to
// the exclusive lock, where the lookup is repeated before calling
// compile (spec.md §5's RWMutex requirement; grounded on
// PipelineCacheCore.GetOrCreateRenderPipeline's fast/slow-path shape).
func (m *HardcodeManager) GetOrCompile(key string, compile func() (Entry, error)) (Entry, error) {
	m.mu.RLock()
	if e, ok := m.entries[key]; ok {
		m.mu.RUnlock()
		return e, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		return e, nil
	}

	e, err := compile()
	if err != nil {
		return Entry{}, err
	}
	m.entries[key] = e
	return e, nil
}

// Len returns the number of deposited entries.
func (m *HardcodeManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
