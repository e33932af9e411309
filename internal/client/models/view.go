package models

// Keys of the durable draft store.
const (
	KeyInputText  = "inputText"
	KeyOutputText = "outputText"
	KeyEditorText = "editorText"
)

// Defaults of the resize inputs.
const (
	DefaultRatio   = "1"
	DefaultQuality = "80"
)

// View is an immutable snapshot of the form state.
type View struct {
	Prompt         string   `json:"prompt"`
	Output         string   `json:"output"`
	Editor         string   `json:"editor"`
	SourceLanguage Language `json:"src_lang"`
	TargetLanguage Language `json:"tgt_lang"`
	Loading        bool     `json:"loading"`
	FileName       string   `json:"file_name,omitempty"`
	Ratio          string   `json:"ratio"`
	Quality        string   `json:"quality"`
	Result         string   `json:"result,omitempty"`
}

// HasResult reports whether a resized image is available.
func (v View) HasResult() bool {
	return v.Result != ""
}

// ResultDataURL is the displayable source of the resized image, or "".
func (v View) ResultDataURL() string {
	if v.Result == "" {
		return ""
	}
	return "data:image/jpeg;base64," + v.Result
}
