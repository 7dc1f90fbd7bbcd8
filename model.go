package argmine

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Alphabet maps between string labels/attributes and integer IDs.
type Alphabet struct {
	toID  map[string]int
	toStr []string
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{toID: make(map[string]int)}
}

// Add adds a string to the alphabet if not already present, returns its ID.
func (a *Alphabet) Add(s string) int {
	if id, ok := a.toID[s]; ok {
		return id
	}
	id := len(a.toStr)
	a.toID[s] = id
	a.toStr = append(a.toStr, s)
	return id
}

// Get returns the ID for a string, or -1 if not found.
func (a *Alphabet) Get(s string) int {
	if id, ok := a.toID[s]; ok {
		return id
	}
	return -1
}

// String returns the entry with the given ID.
func (a *Alphabet) String(id int) string {
	return a.toStr[id]
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.toStr)
}

// StateFeature is one weight of a (attribute, label) pair.
type StateFeature struct {
	Attribute string  `json:"attr"`
	Label     string  `json:"label"`
	Weight    float64 `json:"weight"`
}

// TransitionFeature is the weight of moving from one label to the next.
type TransitionFeature struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// modelFile is the on-disk form of a SequenceModel: the state_features_ and
// transition_features_ of a trained sklearn-crfsuite CRF.
type modelFile struct {
	Name        string              `json:"name,omitempty"`
	Labels      []string            `json:"labels"`
	State       []StateFeature      `json:"state_features"`
	Transitions []TransitionFeature `json:"transition_features"`
}

// A SequenceModel is a trained linear-chain CRF that labels every position
// of a token sequence.
//
// A SequenceModel is read-only after construction and safe for concurrent use.
type SequenceModel struct {
	Name string

	labels     *Alphabet
	attributes *Alphabet
	state      *mat.Dense // attributes x labels
	trans      *mat.Dense // labels x labels
}

// NewSequenceModel builds a model from its weights. Labels referenced by the
// features but missing from labels are appended in order of appearance.
func NewSequenceModel(name string, labels []string, state []StateFeature, trans []TransitionFeature) (*SequenceModel, error) {
	m := &SequenceModel{
		Name:       name,
		labels:     NewAlphabet(),
		attributes: NewAlphabet(),
	}

	for _, l := range labels {
		m.labels.Add(l)
	}
	for _, f := range state {
		m.labels.Add(f.Label)
		m.attributes.Add(f.Attribute)
	}
	for _, f := range trans {
		m.labels.Add(f.From)
		m.labels.Add(f.To)
	}

	L := m.labels.Size()
	if L == 0 {
		return nil, fmt.Errorf("sequence model %q: no labels", name)
	}

	m.state = mat.NewDense(max(m.attributes.Size(), 1), L, nil)
	for _, f := range state {
		if math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) {
			return nil, fmt.Errorf("sequence model %q: invalid weight for %q/%q", name, f.Attribute, f.Label)
		}
		a, y := m.attributes.Get(f.Attribute), m.labels.Get(f.Label)
		m.state.Set(a, y, m.state.At(a, y)+f.Weight)
	}

	m.trans = mat.NewDense(L, L, nil)
	for _, f := range trans {
		if math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) {
			return nil, fmt.Errorf("sequence model %q: invalid weight for %q->%q", name, f.From, f.To)
		}
		i, j := m.labels.Get(f.From), m.labels.Get(f.To)
		m.trans.Set(i, j, m.trans.At(i, j)+f.Weight)
	}

	return m, nil
}

// LoadSequenceModel decodes a model from JSON.
func LoadSequenceModel(r io.Reader) (*SequenceModel, error) {
	var f modelFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode sequence model: %w", err)
	}
	return NewSequenceModel(f.Name, f.Labels, f.State, f.Transitions)
}

// SequenceModelFromDisk loads a model from the JSON file at path.
func SequenceModelFromDisk(path string) (*SequenceModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence model: %w", err)
	}
	defer f.Close()

	return LoadSequenceModel(f)
}

// SequenceModelFromFS loads the model stored as name in filesys.
func SequenceModelFromFS(filesys fs.FS, name string) (*SequenceModel, error) {
	f, err := filesys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open sequence model: %w", err)
	}
	defer f.Close()

	return LoadSequenceModel(f)
}

// Write encodes the model as JSON.
func (m *SequenceModel) Write(w io.Writer) error {
	f := modelFile{Name: m.Name, Labels: m.Labels()}

	for a := 0; a < m.attributes.Size(); a++ {
		for y := 0; y < m.labels.Size(); y++ {
			if v := m.state.At(a, y); v != 0 {
				f.State = append(f.State, StateFeature{
					Attribute: m.attributes.String(a),
					Label:     m.labels.String(y),
					Weight:    v,
				})
			}
		}
	}
	for i := 0; i < m.labels.Size(); i++ {
		for j := 0; j < m.labels.Size(); j++ {
			if v := m.trans.At(i, j); v != 0 {
				f.Transitions = append(f.Transitions, TransitionFeature{
					From:   m.labels.String(i),
					To:     m.labels.String(j),
					Weight: v,
				})
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// Labels returns the model's label set in ID order.
func (m *SequenceModel) Labels() []string {
	out := make([]string, m.labels.Size())
	copy(out, m.labels.toStr)
	return out
}

// PredictSingle labels one sequence of feature maps.
func (m *SequenceModel) PredictSingle(feats []FeatureMap) []string {
	xseq := make([]map[string]float64, len(feats))
	for i, f := range feats {
		xseq[i] = f.CRFAttributes()
	}
	return m.Decode(xseq)
}

// Decode labels a sequence of crfsuite attribute vectors. Unknown attributes
// are ignored.
func (m *SequenceModel) Decode(xseq []map[string]float64) []string {
	if len(xseq) == 0 {
		return []string{}
	}

	path := viterbi(m.stateScores(xseq), m.trans)
	out := make([]string, len(path))
	for t, y := range path {
		out[t] = m.labels.String(y)
	}
	return out
}

// stateScores returns the T x L matrix of per-position label scores.
func (m *SequenceModel) stateScores(xseq []map[string]float64) *mat.Dense {
	L := m.labels.Size()
	scores := mat.NewDense(len(xseq), L, nil)
	row := mat.NewVecDense(L, nil)

	for t, attrs := range xseq {
		row.Zero()
		for attr, val := range attrs {
			a := m.attributes.Get(attr)
			if a < 0 {
				continue
			}
			row.AddScaledVec(row, val, m.state.RowView(a))
		}
		scores.SetRow(t, row.RawVector().Data)
	}
	return scores
}

// viterbi returns the highest scoring label path. Ties go to the lower label
// ID.
func viterbi(scores, trans *mat.Dense) []int {
	T, L := scores.Dims()

	delta := mat.NewDense(T, L, nil)
	back := make([][]int, T)
	delta.SetRow(0, mat.Row(nil, 0, scores))

	for t := 1; t < T; t++ {
		back[t] = make([]int, L)
		for j := 0; j < L; j++ {
			best, arg := math.Inf(-1), 0
			for i := 0; i < L; i++ {
				if s := delta.At(t-1, i) + trans.At(i, j); s > best {
					best, arg = s, i
				}
			}
			delta.Set(t, j, best+scores.At(t, j))
			back[t][j] = arg
		}
	}

	path := make([]int, T)
	best := math.Inf(-1)
	for j := 0; j < L; j++ {
		if v := delta.At(T-1, j); v > best {
			best, path[T-1] = v, j
		}
	}
	for t := T - 1; t > 0; t-- {
		path[t-1] = back[t][path[t]]
	}
	return path
}
