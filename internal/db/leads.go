package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

const leadColumns = `id, name, email, phone, project, service, status, source, priority, notes,
	assigned_to, ip_address, user_agent, referrer, utm_source, utm_medium, utm_campaign,
	created_at, updated_at, contacted_at`

// Sortable columns for lead listings. Anything else falls back to
// created_at; the column name is interpolated into SQL so it must come
// from this table.
var leadOrderColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"email":      "email",
	"status":     "status",
	"priority":   "priority",
	"service":    "service",
}

func scanLead(row interface{ Scan(...any) error }) (*model.Lead, error) {
	var l model.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Project, &l.Service, &l.Status,
		&l.Source, &l.Priority, &l.Notes, &l.AssignedTo, &l.IPAddress,
		&l.UserAgent, &l.Referrer, &l.UTMSource, &l.UTMMedium, &l.UTMCampaign,
		&l.CreatedAt, &l.UpdatedAt, &l.ContactedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (db *Postgres) InsertLead(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	query := `
		INSERT INTO leads (name, email, phone, project, service, source,
			ip_address, user_agent, referrer, utm_source, utm_medium, utm_campaign,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + leadColumns
	return scanLead(db.Pool.QueryRow(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.Project, lead.Service, lead.Source,
		lead.IPAddress, lead.UserAgent, lead.Referrer,
		lead.UTMSource, lead.UTMMedium, lead.UTMCampaign,
	))
}

func (db *Postgres) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(db.Pool.QueryRow(ctx, query, leadID))
}

func (db *Postgres) ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, int64, error) {
	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR project ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := leadOrderColumns[filter.OrderBy]
	if !ok {
		orderCol = "created_at"
	}
	dir := "DESC"
	if filter.OrderDir == "asc" {
		dir = "ASC"
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf("SELECT %s FROM leads%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		leadColumns, where, orderCol, dir, len(args)-1, len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// buildLeadSet renders the allow-listed partial update into SET clauses.
// Returns empty when nothing is set.
func buildLeadSet(update model.LeadUpdate, args *[]any) []string {
	var set []string
	add := func(column string, value any) {
		*args = append(*args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(*args)))
	}

	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Priority != nil {
		add("priority", *update.Priority)
	}
	if update.Notes != nil {
		add("notes", *update.Notes)
	}
	if update.Service != nil {
		add("service", *update.Service)
	}
	if update.AssignedTo != nil {
		add("assigned_to", *update.AssignedTo)
	}
	return set
}

func (db *Postgres) UpdateLead(ctx context.Context, leadID int64, update model.LeadUpdate, stampContacted bool) (*model.Lead, error) {
	var args []any
	set := buildLeadSet(update, &args)
	if stampContacted {
		set = append(set, "contacted_at = NOW()")
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, leadID)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), leadColumns)

	return scanLead(db.Pool.QueryRow(ctx, query, args...))
}

func (db *Postgres) DeleteLead(ctx context.Context, leadID int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, leadID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) BulkUpdateLeads(ctx context.Context, leadIDs []int64, update model.LeadUpdate) (int64, error) {
	var args []any
	set := buildLeadSet(update, &args)
	set = append(set, "updated_at = NOW()")

	args = append(args, leadIDs)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = ANY($%d)",
		strings.Join(set, ", "), len(args))

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
