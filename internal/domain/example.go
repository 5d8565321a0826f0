package domain

// TrainingExample is one (description, parameter-vector) pair as
// persisted in the JSON dataset files.
type TrainingExample struct {
	Shape         string    `json:"shape"`
	Description   string    `json:"description"`
	CADParameters []float64 `json:"cad_parameters"`
}
