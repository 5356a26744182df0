package operation

import "net/http"

// FolderColors are the colors Eagle accepts for a folder.
var FolderColors = []string{"red", "orange", "green", "yellow", "aqua", "blue", "purple", "pink"}

func folderOps() []Descriptor {
	return []Descriptor{
		{
			Name:        "create_folder",
			Title:       "Create folder",
			Description: "Create a folder. The created folder will be put at the bottom of the folder list of the current library.",
			Method:      http.MethodPost,
			Path:        "/api/folder/create",
			Hint:        HintWrite,
			Params: []Param{
				{Name: "folder_name", Field: "folderName", Kind: KindString, Required: true, Description: "Name of the folder"},
				{Name: "parent", Kind: KindString, Description: "ID of the parent folder"},
			},
		},
		{
			Name:        "rename_folder",
			Title:       "Rename folder",
			Description: "Rename the specified folder.",
			Method:      http.MethodPost,
			Path:        "/api/folder/rename",
			Hint:        HintIdempotentWrite,
			Params: []Param{
				{Name: "folder_id", Field: "folderId", Kind: KindString, Required: true, Description: "The folder's ID"},
				{Name: "new_name", Field: "newName", Kind: KindString, Required: true, Description: "The new name of the folder"},
			},
		},
		{
			Name:        "update_folder",
			Title:       "Update folder",
			Description: "Update the specified folder's name, description or color.",
			Method:      http.MethodPost,
			Path:        "/api/folder/update",
			Hint:        HintIdempotentWrite,
			Params: []Param{
				{Name: "folder_id", Field: "folderId", Kind: KindString, Required: true, Description: "The folder's ID"},
				{Name: "new_name", Field: "newName", Kind: KindString, Description: "The new name of the folder"},
				{Name: "new_description", Field: "newDescription", Kind: KindString, Description: "The new description of the folder"},
				{Name: "new_color", Field: "newColor", Kind: KindString, Enum: FolderColors, Description: "The new color of the folder"},
			},
		},
		{
			Name:        "get_folder_list",
			Title:       "List folders",
			Description: "Get the list of folders of the current library.",
			Method:      http.MethodGet,
			Path:        "/api/folder/list",
			Hint:        HintReadOnly,
		},
		{
			Name:        "get_folder_list_recent",
			Title:       "List recent folders",
			Description: "Get the list of folders recently used by the user.",
			Method:      http.MethodGet,
			Path:        "/api/folder/listRecent",
			Hint:        HintReadOnly,
		},
	}
}
