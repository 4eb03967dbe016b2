package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

func dropdownFromRecord(rec *core.Record) services.DropdownEntry {
	return services.DropdownEntry{
		ID:            rec.Id,
		Name:          rec.GetString("name"),
		ContactPerson: rec.GetString("contact_person"),
		Email:         rec.GetString("email"),
		Phone:         rec.GetString("phone"),
		Address:       rec.GetString("address"),
	}
}

func setDropdownFields(record *core.Record, kind services.DropdownKind, entry services.DropdownEntry) {
	record.Set("name", entry.Name)
	if kind == services.Suppliers {
		record.Set("contact_person", entry.ContactPerson)
		record.Set("email", entry.Email)
		record.Set("phone", entry.Phone)
		record.Set("address", entry.Address)
	}
}

// dropdownKind resolves {kind}; unknown kinds are 404.
func dropdownKind(e *core.RequestEvent) (services.DropdownKind, error) {
	return services.ParseDropdownKind(e.Request.PathValue("kind"))
}

// bindDropdownEntry decodes, normalizes and validates the request body.
func bindDropdownEntry(e *core.RequestEvent, kind services.DropdownKind) (services.DropdownEntry, error) {
	var entry services.DropdownEntry
	if err := e.BindBody(&entry); err != nil {
		return entry, fmt.Errorf("%w: invalid request body", services.ErrValidation)
	}
	entry = entry.Normalize(kind)
	if err := entry.Validate(kind); err != nil {
		return entry, fmt.Errorf("%w: %w", services.ErrValidation, err)
	}
	return entry, nil
}

// checkDuplicateName rejects a name already used by another entry of the
// same kind.
func checkDuplicateName(app *pocketbase.PocketBase, kind services.DropdownKind, name, exceptID string) error {
	existing, _ := app.FindFirstRecordByFilter(
		string(kind),
		"name = {:name} && id != {:id}",
		map[string]any{"name": name, "id": exceptID},
	)
	if existing != nil {
		return fmt.Errorf("%w: %s %q already exists", services.ErrValidation, strings.TrimSuffix(string(kind), "s"), name)
	}
	return nil
}

// HandleDropdownList handles GET /api/dropdowns/{kind}.
func HandleDropdownList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := dropdownKind(e)
		if err != nil {
			return respondError(e, "dropdown_list", err)
		}

		filter := "id != ''"
		params := map[string]any{}
		if q := strings.TrimSpace(e.Request.URL.Query().Get("search")); q != "" {
			filter = "name ~ {:q}"
			params["q"] = q
		}

		records, err := app.FindRecordsByFilter(string(kind), filter, "name", 0, 0, params)
		if err != nil {
			return respondError(e, "dropdown_list", err)
		}

		entries := make([]services.DropdownEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, dropdownFromRecord(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{string(kind): entries})
	}
}

// HandleDropdownCreate handles POST /api/dropdowns/{kind}.
func HandleDropdownCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := dropdownKind(e)
		if err != nil {
			return respondError(e, "dropdown_create", err)
		}
		entry, err := bindDropdownEntry(e, kind)
		if err != nil {
			return respondError(e, "dropdown_create", err)
		}
		if err := checkDuplicateName(app, kind, entry.Name, ""); err != nil {
			return respondError(e, "dropdown_create", err)
		}

		col, err := app.FindCollectionByNameOrId(string(kind))
		if err != nil {
			return respondError(e, "dropdown_create", err)
		}
		record := core.NewRecord(col)
		setDropdownFields(record, kind, entry)
		if err := app.Save(record); err != nil {
			return respondError(e, "dropdown_create", err)
		}

		return e.JSON(http.StatusCreated, map[string]any{"entry": dropdownFromRecord(record)})
	}
}

// HandleDropdownUpdate handles PUT /api/dropdowns/{kind}/{id}.
func HandleDropdownUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := dropdownKind(e)
		if err != nil {
			return respondError(e, "dropdown_update", err)
		}
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById(string(kind), id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Entry not found")
		}

		entry, err := bindDropdownEntry(e, kind)
		if err != nil {
			return respondError(e, "dropdown_update", err)
		}
		if err := checkDuplicateName(app, kind, entry.Name, record.Id); err != nil {
			return respondError(e, "dropdown_update", err)
		}

		setDropdownFields(record, kind, entry)
		if err := app.Save(record); err != nil {
			return respondError(e, "dropdown_update", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"entry": dropdownFromRecord(record)})
	}
}

// HandleDropdownDelete handles DELETE /api/dropdowns/{kind}/{id}.
func HandleDropdownDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := dropdownKind(e)
		if err != nil {
			return respondError(e, "dropdown_delete", err)
		}
		record, err := app.FindRecordById(string(kind), e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Entry not found")
		}
		if err := app.Delete(record); err != nil {
			return respondError(e, "dropdown_delete", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"message": "Entry deleted successfully"})
	}
}
