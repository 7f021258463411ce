package models

// QAPair is one generated question/answer record. The JSON keys are the
// Danish names used both in the cache files and in the model response
// format, so the cache artifact stays byte-compatible with the dataset's
// original cache layout.
type QAPair struct {
	Question string `json:"spørgsmål"`
	Answer   string `json:"svar"`
}

// DatasetRow is one flattened row of the output dataset: a QA pair with
// its originating article's title and cleaned content repeated.
type DatasetRow struct {
	Title    string `json:"title"`
	Context  string `json:"context"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
