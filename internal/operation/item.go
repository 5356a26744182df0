package operation

import (
	"context"
	"net/http"

	"eagle-mcp/internal/eagle"
)

// ItemOrders are the accepted orderBy values for get_item_list. A leading
// minus sorts descending.
var ItemOrders = []string{
	"CREATEDATE", "FILESIZE", "NAME", "RESOLUTION",
	"-CREATEDATE", "-FILESIZE", "-NAME", "-RESOLUTION",
}

var (
	itemID     = Param{Name: "item_id", Field: "id", Kind: KindString, Required: true, Description: "The item's ID"}
	folderID   = Param{Name: "folder_id", Field: "folderId", Kind: KindString, Description: "ID of the folder the item is added to"}
	itemName   = Param{Name: "name", Kind: KindString, Required: true, Description: "The name of the item"}
	website    = Param{Name: "website", Kind: KindString, Description: "The address of the source of the item"}
	tags       = Param{Name: "tags", Kind: KindStringArray, Description: "Tags for the item"}
	annotation = Param{Name: "annotation", Kind: KindString, Description: "The annotation for the item"}
	star       = Param{Name: "star", Kind: KindInteger, Min: ptr(0), Max: ptr(5), Description: "The rating for the item"}
	modTime    = Param{Name: "modification_time", Field: "modificationTime", Kind: KindInteger, Min: ptr(0),
		Description: "The creation date (ms) of the item; alters its sorting order in Eagle"}
	headers = Param{Name: "headers", Kind: KindStringMap,
		Description: "Custom HTTP headers used when Eagle downloads the URL"}
)

func urlItemParams() []Param {
	return []Param{
		{Name: "url", Kind: KindString, Required: true, Description: "The URL of the image to add. Supports http, https, base64"},
		itemName, website, tags, star, annotation, modTime, headers,
	}
}

func pathItemParams() []Param {
	return []Param{
		{Name: "path", Kind: KindString, Required: true, Description: "The path of the local file"},
		itemName, website, tags, star, annotation,
	}
}

func itemOps() []Descriptor {
	return []Descriptor{
		{
			Name:        "add_item_from_url",
			Title:       "Add item from URL",
			Description: "Add an image from a URL to Eagle App. To add several items in a row, use `add_items_from_urls`.",
			Method:      http.MethodPost,
			Path:        "/api/item/addFromURL",
			Hint:        HintWrite,
			Params:      append(urlItemParams(), folderID),
		},
		{
			Name:        "add_items_from_urls",
			Title:       "Add items from URLs",
			Description: "Add multiple images from URLs to Eagle App.",
			Method:      http.MethodPost,
			Path:        "/api/item/addFromURLs",
			Hint:        HintWrite,
			Params: []Param{
				{Name: "items", Kind: KindObjectArray, Required: true, MinItems: 1, Items: urlItemParams(), Description: "The items to add"},
				folderID,
			},
		},
		{
			Name:        "add_item_from_path",
			Title:       "Add item from path",
			Description: "Add a local file to Eagle App. To add several files in a row, use `add_items_from_paths`.",
			Method:      http.MethodPost,
			Path:        "/api/item/addFromPath",
			Hint:        HintWrite,
			Params:      append(pathItemParams(), folderID),
		},
		{
			Name:        "add_items_from_paths",
			Title:       "Add items from paths",
			Description: "Add multiple local files to Eagle App.",
			Method:      http.MethodPost,
			Path:        "/api/item/addFromPaths",
			Hint:        HintWrite,
			Params: []Param{
				{Name: "items", Kind: KindObjectArray, Required: true, MinItems: 1, Items: pathItemParams(), Description: "The files to add"},
				folderID,
			},
		},
		{
			Name:        "add_bookmark",
			Title:       "Add bookmark",
			Description: "Save a link in URL form to Eagle App.",
			Method:      http.MethodPost,
			Path:        "/api/item/addBookmark",
			Hint:        HintWrite,
			Params: []Param{
				{Name: "url", Kind: KindString, Required: true, Description: "The URL of the bookmark"},
				{Name: "name", Kind: KindString, Required: true, Description: "The name of the bookmark"},
				{Name: "base64", Kind: KindString, Description: "Thumbnail of the bookmark as base64"},
				tags, modTime, folderID,
			},
		},
		{
			Name:  "get_item_info",
			Title: "Get item info",
			Description: "Get properties of the specified file, " +
				"including the file name, tags, categorizations, folders, dimensions, etc.",
			Method: http.MethodGet,
			Path:   eagle.PathItemInfo,
			Hint:   HintReadOnly,
			Params: []Param{itemID},
		},
		{
			Name:  "get_item_thumbnail",
			Title: "Get item thumbnail",
			Description: "Get the path of the thumbnail of the file specified. " +
				"For a batch of thumbnail paths, combining the library path with the item ID is recommended.",
			Method: http.MethodGet,
			Path:   "/api/item/thumbnail",
			Hint:   HintReadOnly,
			Params: []Param{itemID},
		},
		{
			Name:        "get_item_source",
			Title:       "Get item source path",
			Description: "Get the path of the original file of the specified item.",
			Method:      http.MethodGet,
			Path:        eagle.PathItemSource,
			Hint:        HintReadOnly,
			Params:      []Param{itemID},
			Run: func(ctx context.Context, c *eagle.Client, params *eagle.Params) eagle.Response {
				id, _ := params.Get("id")
				s, _ := id.(string)
				return eagle.Response{Envelope: c.ItemSource(ctx, s)}
			},
		},
		{
			Name:        "get_item_list",
			Title:       "List items",
			Description: "Get items that match the filter condition.",
			Method:      http.MethodGet,
			Path:        "/api/item/list",
			Hint:        HintReadOnly,
			Params: []Param{
				{Name: "limit", Kind: KindInteger, Min: ptr(1), Max: ptr(200), Description: "The number of items to return. Eagle defaults to 200"},
				{Name: "offset", Kind: KindInteger, Min: ptr(0), Description: "Offset into the results, starting at 0"},
				{Name: "order_by", Field: "orderBy", Kind: KindString, Enum: ItemOrders, Description: "The sorting order; prefix with - for descending"},
				{Name: "keyword", Kind: KindString, Description: "Filter by keyword"},
				{Name: "ext", Kind: KindString, Description: "Filter by extension, e.g. `jpg`"},
				{Name: "tags", Kind: KindString, Description: "Filter by tags, comma separated, e.g. `Design,Poster`"},
				{Name: "folders", Kind: KindString, Description: "Filter by folder IDs, comma separated"},
			},
		},
		{
			Name:        "move_item_to_trash",
			Title:       "Move items to trash",
			Description: "Move the specified items to the trash.",
			Method:      http.MethodPost,
			Path:        "/api/item/moveToTrash",
			Hint:        HintDestructive,
			Params: []Param{
				{Name: "item_ids", Field: "itemIds", Kind: KindStringArray, Required: true, MinItems: 1, Description: "IDs of the items"},
			},
		},
		{
			Name:  "refresh_item_palette",
			Title: "Refresh item palette",
			Description: "Re-analyze the colors of the file. " +
				"Call this after the original file was changed to refresh the color analysis.",
			Method: http.MethodPost,
			Path:   "/api/item/refreshPalette",
			Hint:   HintIdempotentWrite,
			Params: []Param{itemID},
		},
		{
			Name:  "refresh_item_thumbnail",
			Title: "Refresh item thumbnail",
			Description: "Re-generate the thumbnail shown in the list. " +
				"Call this after the original file was changed; the color analysis is refreshed too.",
			Method: http.MethodPost,
			Path:   "/api/item/refreshThumbnail",
			Hint:   HintIdempotentWrite,
			Params: []Param{itemID},
		},
		{
			Name:        "update_item",
			Title:       "Update item",
			Description: "Modify the specified fields of an item.",
			Method:      http.MethodPost,
			Path:        "/api/item/update",
			Hint:        HintIdempotentWrite,
			Params: []Param{
				itemID,
				tags,
				annotation,
				{Name: "url", Kind: KindString, Description: "The source URL"},
				star,
			},
		},
	}
}
