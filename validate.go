package ocflkit

import (
	"context"

	"github.com/ocflkit/ocflkit/validation"
)

// ValidateObject runs the full validation of the object at dir in fsys:
// structural checks of the root layout followed by checksum validation of the
// content files against the root inventory's manifest. All findings share one
// Result. Content validation is skipped when the root inventory is missing or
// can't be decoded, since there is no manifest to check against.
func ValidateObject(ctx context.Context, fsys FS, dir string, opts ...ValidationOption) *validation.Result {
	vopts, result := validationSetup(opts)
	opts = append(opts, AppendResult(result))
	obj, _ := ValidateObjectRoot(ctx, fsys, dir, opts...)
	if obj == nil || !obj.HasInventory {
		return result
	}
	inv, err := ReadInventory(ctx, fsys, obj.InventoryPath())
	if err != nil {
		return result.LogFatal(vopts.logger, err)
	}
	ValidateContent(ctx, obj, inv, opts...)
	return result
}
