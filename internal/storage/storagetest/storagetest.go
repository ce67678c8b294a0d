// Package storagetest holds the behaviour every storage.Storage backend
// must show. Backend test files call Run with a constructor and an id in
// the backend's format that is never assigned.
package storagetest

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/types"
)

// Run exercises store against the storage contract. newStore must
// return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage, unusedID string) {
	t.Helper()
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := newStore(t)

		Convey("Listing returns an empty, non-nil slice", func() {
			items, err := store.GetMenuItems(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldNotBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("Ping succeeds", func() {
			So(store.Ping(ctx), ShouldBeNil)
		})

		Convey("Creating an invalid draft fails validation and stores nothing", func() {
			_, err := store.CreateMenuItem(ctx, draft("", 5, nil))

			var vErr *types.ValidationError
			So(errors.As(err, &vErr), ShouldBeTrue)

			items, err := store.GetMenuItems(ctx)
			So(err, ShouldBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("When two items are created", func() {
			desc := "Double patty"
			burger, err := store.CreateMenuItem(ctx, draft("Burger", 9.5, &desc))
			So(err, ShouldBeNil)
			fries, err := store.CreateMenuItem(ctx, draft("Fries", 3, nil))
			So(err, ShouldBeNil)

			Convey("Then each gets a distinct non-empty id", func() {
				So(burger.ID, ShouldNotBeEmpty)
				So(fries.ID, ShouldNotBeEmpty)
				So(burger.ID, ShouldNotEqual, fries.ID)
				So(burger.Name, ShouldEqual, "Burger")
				So(*burger.Description, ShouldEqual, "Double patty")
				So(fries.Description, ShouldBeNil)
			})

			Convey("Then listing returns both in insertion order", func() {
				items, err := store.GetMenuItems(ctx)
				So(err, ShouldBeNil)
				So(items, ShouldResemble, []types.MenuItem{burger, fries})
			})

			Convey("Then a partial update changes only the given fields", func() {
				updated, err := store.UpdateMenuItemByID(ctx, burger.ID, map[string]any{"price": 12.0})
				So(err, ShouldBeNil)
				So(updated.Price, ShouldEqual, 12.0)
				So(updated.Name, ShouldEqual, "Burger")
				So(*updated.Description, ShouldEqual, "Double patty")

				items, err := store.GetMenuItems(ctx)
				So(err, ShouldBeNil)
				So(items[0], ShouldResemble, updated)
			})

			Convey("Then an update that breaks the schema is rejected and not stored", func() {
				_, err := store.UpdateMenuItemByID(ctx, burger.ID, map[string]any{"name": ""})
				So(err, ShouldNotBeNil)
				So(errors.Is(err, storage.ErrNotFound), ShouldBeFalse)

				items, err := store.GetMenuItems(ctx)
				So(err, ShouldBeNil)
				So(items[0].Name, ShouldEqual, "Burger")
			})

			Convey("Then null clears the description", func() {
				updated, err := store.UpdateMenuItemByID(ctx, burger.ID, map[string]any{"description": nil})
				So(err, ShouldBeNil)
				So(updated.Description, ShouldBeNil)
			})

			Convey("Then a price of zero can be stored by update", func() {
				updated, err := store.UpdateMenuItemByID(ctx, fries.ID, map[string]any{"price": 0.0})
				So(err, ShouldBeNil)
				So(updated.Price, ShouldEqual, 0.0)
			})

			Convey("Then deleting removes only that item, and a second delete is not found", func() {
				So(store.DeleteMenuItemByID(ctx, burger.ID), ShouldBeNil)

				items, err := store.GetMenuItems(ctx)
				So(err, ShouldBeNil)
				So(items, ShouldResemble, []types.MenuItem{fries})

				err = store.DeleteMenuItemByID(ctx, burger.ID)
				So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("Updating or deleting an unassigned id is not found", func() {
			_, err := store.UpdateMenuItemByID(ctx, unusedID, map[string]any{"price": 1.0})
			So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)

			err = store.DeleteMenuItemByID(ctx, unusedID)
			So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
		})

		Convey("Updating or deleting a malformed id is an invalid id error", func() {
			_, err := store.UpdateMenuItemByID(ctx, "not-an-id", map[string]any{"price": 1.0})
			So(errors.Is(err, storage.ErrInvalidID), ShouldBeTrue)

			err = store.DeleteMenuItemByID(ctx, "not-an-id")
			So(errors.Is(err, storage.ErrInvalidID), ShouldBeTrue)
		})
	})
}

func draft(name string, price float64, desc *string) types.Draft {
	return types.Draft{Name: &name, Description: desc, Price: &price}
}
