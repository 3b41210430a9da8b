package analytics

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"time"
)

// Question log bounds: the last QuestionLogCap asked questions are kept
// per chunk, each truncated to questionTextMax characters for storage.
const (
	QuestionLogCap  = 10
	questionTextMax = 200
)

// QuestionRecord is one asked question kept for reference in the chunk's
// bounded log.
type QuestionRecord struct {
	Question string    `json:"question"`
	Correct  bool      `json:"correct"`
	At       time.Time `json:"at"`
}

// ChunkStat tracks answer performance for one unit of source content.
type ChunkStat struct {
	ChunkID         string           `json:"chunk_id"`
	FileHash        string           `json:"file_hash"`
	Attempts        int              `json:"attempts"`
	Correct         int              `json:"correct"`
	Incorrect       int              `json:"incorrect"`
	SampleText      string           `json:"sample_text,omitempty"`
	TopicName       string           `json:"topic_name,omitempty"`
	Ordinal         int              `json:"ordinal"`
	LastAttempt     time.Time        `json:"last_attempt"`
	RecentQuestions []QuestionRecord `json:"recent_questions,omitempty"`
}

// Accuracy returns the fraction of correct answers, 0 when nothing has
// been attempted yet.
func (c *ChunkStat) Accuracy() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempts)
}

// Chunks maps chunk IDs to their stats.
type Chunks map[string]*ChunkStat

// FileMapping maps short file hashes to the friendly filename supplied at
// upload time.
type FileMapping map[string]string

// HashFilename derives the 8-character hex hash used as a file key.
func HashFilename(filename string) string {
	sum := md5.Sum([]byte(filename))
	return hex.EncodeToString(sum[:])[:8]
}

// Config tunes classification and topic naming.
type Config struct {
	MinAttempts     int     // attempts required before a chunk is classified
	StrongThreshold float64 // accuracy at or above which a chunk is strong
	WeakThreshold   float64 // accuracy at or below which a chunk is weak
	TopicWords      int     // meaningful words taken from sample text
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinAttempts:     3,
		StrongThreshold: 0.8,
		WeakThreshold:   0.5,
		TopicWords:      4,
	}
}

// Aggregator performs incremental performance tracking over the chunk and
// file maps held inside the engine state. Stats are running counters; the
// only per-answer history is the bounded question log on each chunk.
type Aggregator struct {
	cfg Config
}

// NewAggregator creates an Aggregator, filling zero config fields with
// defaults.
func NewAggregator(cfg Config) *Aggregator {
	def := DefaultConfig()
	if cfg.MinAttempts <= 0 {
		cfg.MinAttempts = def.MinAttempts
	}
	if cfg.StrongThreshold == 0 {
		cfg.StrongThreshold = def.StrongThreshold
	}
	if cfg.WeakThreshold == 0 {
		cfg.WeakThreshold = def.WeakThreshold
	}
	if cfg.TopicWords <= 0 {
		cfg.TopicWords = def.TopicWords
	}
	return &Aggregator{cfg: cfg}
}

// RegisterFile records a friendly name for a file and returns its hash.
// Registering the same filename twice is a no-op.
func (a *Aggregator) RegisterFile(fm FileMapping, filename string) string {
	hash := HashFilename(filename)
	if _, ok := fm[hash]; !ok {
		fm[hash] = filename
	}
	return hash
}

// RecordAnswer upserts the chunk's stat and folds in one answer. The
// sample text is captured on first sight only; it seeds the topic name.
// A non-empty questionText is appended to the chunk's bounded question
// log for reference.
func (a *Aggregator) RecordAnswer(chunks Chunks, chunkID, fileHash string, correct bool, questionText, sampleText string, at time.Time) {
	st, ok := chunks[chunkID]
	if !ok {
		st = &ChunkStat{
			ChunkID:    chunkID,
			FileHash:   fileHash,
			SampleText: sampleText,
			Ordinal:    len(chunks) + 1,
		}
		chunks[chunkID] = st
	}
	if st.FileHash == "" {
		st.FileHash = fileHash
	}
	if st.SampleText == "" && sampleText != "" {
		st.SampleText = sampleText
	}

	st.Attempts++
	if correct {
		st.Correct++
	} else {
		st.Incorrect++
	}
	st.LastAttempt = at

	if questionText != "" {
		if len(questionText) > questionTextMax {
			questionText = questionText[:questionTextMax]
		}
		st.RecentQuestions = append(st.RecentQuestions, QuestionRecord{
			Question: questionText,
			Correct:  correct,
			At:       at,
		})
		if len(st.RecentQuestions) > QuestionLogCap {
			st.RecentQuestions = st.RecentQuestions[len(st.RecentQuestions)-QuestionLogCap:]
		}
	}
}

// TopicName returns a friendly label for a chunk, deriving it from the
// sample text on first call and caching it on the stat. Repeated calls
// return the identical string for the life of the chunk.
func (a *Aggregator) TopicName(chunks Chunks, chunkID string) string {
	st, ok := chunks[chunkID]
	if !ok {
		return ""
	}
	if st.TopicName == "" {
		st.TopicName = deriveTopicName(st.SampleText, st.Ordinal, a.cfg.TopicWords)
	}
	return st.TopicName
}

// FilePerformance aggregates every chunk sharing a file hash.
type FilePerformance struct {
	FileHash       string    `json:"file_hash"`
	FileName       string    `json:"file_name"`
	Attempts       int       `json:"attempts"`
	Correct        int       `json:"correct"`
	Incorrect      int       `json:"incorrect"`
	Accuracy       float64   `json:"accuracy"`
	ChunksTracked  int       `json:"chunks_tracked"`
	ChunksWithData int       `json:"chunks_with_data"`
	LastAttempt    time.Time `json:"last_attempt"`
}

// PerformanceByFile groups chunk stats by file, resolving names through
// the file mapping. Files without a registered name report their hash.
func (a *Aggregator) PerformanceByFile(chunks Chunks, fm FileMapping) map[string]FilePerformance {
	byFile := make(map[string]FilePerformance)
	for _, st := range chunks {
		perf := byFile[st.FileHash]
		perf.FileHash = st.FileHash
		perf.Attempts += st.Attempts
		perf.Correct += st.Correct
		perf.Incorrect += st.Incorrect
		perf.ChunksTracked++
		if st.Attempts > 0 {
			perf.ChunksWithData++
		}
		if st.LastAttempt.After(perf.LastAttempt) {
			perf.LastAttempt = st.LastAttempt
		}
		byFile[st.FileHash] = perf
	}

	out := make(map[string]FilePerformance, len(byFile))
	for hash, perf := range byFile {
		if perf.Attempts > 0 {
			perf.Accuracy = float64(perf.Correct) / float64(perf.Attempts)
		}
		name := fm[hash]
		if name == "" {
			name = hash
		}
		perf.FileName = name
		out[name] = perf
	}
	return out
}

// TopicPerformance is one classified chunk in a strong/weak listing.
type TopicPerformance struct {
	ChunkID  string  `json:"chunk_id"`
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// StrongWeakTopics classifies chunks with enough evidence. Chunks below
// the minimum attempt count, including never-attempted ones, land in
// neither list. Strong topics sort best-first, weak ones worst-first.
func (a *Aggregator) StrongWeakTopics(chunks Chunks) (strong, weak []TopicPerformance) {
	for id, st := range chunks {
		if st.Attempts < a.cfg.MinAttempts {
			continue
		}
		tp := TopicPerformance{
			ChunkID:  id,
			Topic:    a.TopicName(chunks, id),
			Attempts: st.Attempts,
			Correct:  st.Correct,
			Accuracy: st.Accuracy(),
		}
		switch {
		case tp.Accuracy >= a.cfg.StrongThreshold:
			strong = append(strong, tp)
		case tp.Accuracy <= a.cfg.WeakThreshold:
			weak = append(weak, tp)
		}
	}

	sort.Slice(strong, func(i, j int) bool {
		if strong[i].Accuracy != strong[j].Accuracy {
			return strong[i].Accuracy > strong[j].Accuracy
		}
		return strong[i].ChunkID < strong[j].ChunkID
	})
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Accuracy != weak[j].Accuracy {
			return weak[i].Accuracy < weak[j].Accuracy
		}
		return weak[i].ChunkID < weak[j].ChunkID
	})
	return strong, weak
}

// Summary rolls every tracked chunk into one overview.
type Summary struct {
	TotalChunks     int     `json:"total_chunks"`
	TotalAttempts   int     `json:"total_attempts"`
	TotalCorrect    int     `json:"total_correct"`
	TotalIncorrect  int     `json:"total_incorrect"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	ChunksWithData  int     `json:"chunks_with_data"`
}

// Summarize computes the overall performance summary.
func (a *Aggregator) Summarize(chunks Chunks) Summary {
	var s Summary
	s.TotalChunks = len(chunks)
	for _, st := range chunks {
		s.TotalAttempts += st.Attempts
		s.TotalCorrect += st.Correct
		s.TotalIncorrect += st.Incorrect
		if st.Attempts > 0 {
			s.ChunksWithData++
		}
	}
	if s.TotalAttempts > 0 {
		s.OverallAccuracy = float64(s.TotalCorrect) / float64(s.TotalAttempts)
	}
	return s
}
