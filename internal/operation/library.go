package operation

import "net/http"

func libraryOps() []Descriptor {
	libraryPath := Param{Name: "library_path", Field: "libraryPath", Kind: KindString, Required: true, Description: "The path of the library"}

	return []Descriptor{
		{
			Name:  "get_library_info",
			Title: "Get library info",
			Description: "Get detailed information of the library currently running. " +
				"Includes `All Folders`, `All Smart Folders`, `All Tag Groups`, `Quick Access` and more.",
			Method: http.MethodGet,
			Path:   "/api/library/info",
			Hint:   HintReadOnly,
		},
		{
			Name:        "get_library_history",
			Title:       "Get library history",
			Description: "Get the list of libraries recently opened by the Application.",
			Method:      http.MethodGet,
			Path:        "/api/library/history",
			Hint:        HintReadOnly,
		},
		{
			Name:        "switch_library",
			Title:       "Switch library",
			Description: "Switch the library currently opened by Eagle.",
			Method:      http.MethodPost,
			Path:        "/api/library/switch",
			Hint:        HintIdempotentWrite,
			Params:      []Param{libraryPath},
		},
		{
			Name:        "get_library_icon",
			Title:       "Get library icon",
			Description: "Obtain the icon of the specified library. Returns the content type and size of the image.",
			Method:      http.MethodGet,
			Path:        "/api/library/icon",
			Hint:        HintReadOnly,
			Binary:      true,
			Params:      []Param{libraryPath},
		},
	}
}
