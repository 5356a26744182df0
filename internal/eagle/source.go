package eagle

import (
	"context"
	"path/filepath"

	"github.com/tidwall/gjson"
)

const (
	PathLibraryInfo = "/api/library/info"
	PathItemInfo    = "/api/item/info"
	// PathItemSource is not an Eagle endpoint; ItemSource answers it locally.
	PathItemSource = "/api/item/source"
)

// ItemSource reconstructs the on-disk path of an item's original file. Eagle
// keeps each file in <library>/images/<id>.info/<name>.<ext> but does not
// expose that path, so it is derived from the library and item info. The item
// lookup only happens after the library lookup succeeds.
func (c *Client) ItemSource(ctx context.Context, id string) Envelope {
	library := c.Get(ctx, PathLibraryInfo, nil)
	libPath := library.Field("library.path")
	if !library.OK() || !libPath.Exists() {
		return Failure("Failed to fetch eagle info")
	}

	item := c.Get(ctx, PathItemInfo, NewParams().Set("id", id))
	itemID, name, ext := item.Field("id"), item.Field("name"), item.Field("ext")
	if !item.OK() || !itemID.Exists() || !name.Exists() || !ext.Exists() {
		return Failure("Failed to fetch item info")
	}

	source, ok := sourcePath(libPath, itemID, name, ext)
	if !ok {
		return Failure("Failed to fetch source path")
	}
	return Success(map[string]string{"source": source})
}

func sourcePath(lib, id, name, ext gjson.Result) (string, bool) {
	for _, r := range []gjson.Result{lib, id, name, ext} {
		if r.Type != gjson.String || r.Str == "" {
			return "", false
		}
	}
	return filepath.Join(lib.Str, "images", id.Str+".info", name.Str+"."+ext.Str), true
}
