package constants

const (
	GetAircraftByID = `
	SELECT * FROM aircraft WHERE id = $1
	`

	ListAircraftBySchool = `
	SELECT * FROM aircraft WHERE school_id = $1 AND is_active = TRUE ORDER BY tail_number
	`

	InsertAircraft = `
	INSERT INTO aircraft (school_id, tail_number, model, current_hours, is_active)
	VALUES ($1, $2, $3, $4, TRUE)
	RETURNING id, created_at, updated_at
	`

	UpdateAircraftHours = `
	UPDATE aircraft SET current_hours = $2, updated_at = NOW() WHERE id = $1
	RETURNING *
	`

	GetComponentByID = `
	SELECT * FROM aircraft_components WHERE id = $1
	`

	ListComponentsByAircraft = `
	SELECT * FROM aircraft_components
	WHERE aircraft_id = $1 AND status <> 'removed'
	ORDER BY name
	`

	ListActiveComponentsBySchool = `
	SELECT c.* FROM aircraft_components c
	JOIN aircraft a ON a.id = c.aircraft_id
	WHERE a.school_id = $1 AND c.status = 'active'
	`

	InsertComponent = `
	INSERT INTO aircraft_components (
		aircraft_id, name, description, component_type, interval_type,
		interval_hours, interval_days, current_due_hours, current_due_date,
		last_completed_hours, last_completed_date, status, priority, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, created_at, updated_at
	`

	DeleteComponent = `
	DELETE FROM aircraft_components WHERE id = $1
	`

	// Extend/revert touch only the extension percent; the base due values are
	// the anchor for next-cycle projection and must never absorb an extension.
	SetComponentExtension = `
	UPDATE aircraft_components SET extension_percent = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	UpdateComponent = `
	UPDATE aircraft_components SET
		name = $2, description = $3, interval_hours = $4, interval_days = $5,
		current_due_hours = $6, current_due_date = $7, status = $8,
		priority = $9, notes = $10, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	GetVisitByID = `
	SELECT * FROM maintenance_visits WHERE id = $1
	`

	ListVisitsByAircraft = `
	SELECT * FROM maintenance_visits WHERE aircraft_id = $1 ORDER BY visit_date DESC
	`

	ListVisitsByComponent = `
	SELECT * FROM maintenance_visits WHERE component_id = $1 ORDER BY visit_date DESC
	`

	GetMemberByID = `
	SELECT * FROM members WHERE id = $1
	`

	ListMembersBySchool = `
	SELECT * FROM members WHERE school_id = $1 ORDER BY last_name, first_name
	`

	InsertMember = `
	INSERT INTO members (school_id, first_name, last_name, email, phone, role, joined_on, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	RETURNING id, created_at, updated_at
	`

	UpdateMember = `
	UPDATE members SET
		first_name = $2, last_name = $3, email = $4, phone = $5, role = $6,
		is_active = $7, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	GetMembershipByID = `
	SELECT * FROM memberships WHERE id = $1
	`

	ListMembershipsByMember = `
	SELECT * FROM memberships WHERE member_id = $1 ORDER BY starts_on DESC
	`

	ListMembershipsBySchool = `
	SELECT m.* FROM memberships m
	JOIN members mb ON mb.id = m.member_id
	WHERE mb.school_id = $1
	ORDER BY m.starts_on DESC
	`

	InsertMembership = `
	INSERT INTO memberships (member_id, plan, starts_on, ends_on, status, monthly_rate)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`

	UpdateMembership = `
	UPDATE memberships SET
		plan = $2, ends_on = $3, status = $4, monthly_rate = $5, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	GetCredentialByID = `
	SELECT * FROM pilot_credentials WHERE id = $1
	`

	ListCredentialsByMember = `
	SELECT * FROM pilot_credentials WHERE member_id = $1 ORDER BY expires_on NULLS LAST
	`

	InsertCredential = `
	INSERT INTO pilot_credentials (member_id, credential_type, number, issued_on, expires_on, notes)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`

	UpdateCredential = `
	UPDATE pilot_credentials SET
		number = $2, issued_on = $3, expires_on = $4, notes = $5, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	GetEnrollmentByID = `
	SELECT * FROM enrollments WHERE id = $1
	`

	ListEnrollmentsBySchool = `
	SELECT e.* FROM enrollments e
	JOIN members mb ON mb.id = e.member_id
	WHERE mb.school_id = $1
	ORDER BY e.started_on DESC
	`

	ListEnrollmentsByMember = `
	SELECT * FROM enrollments WHERE member_id = $1 ORDER BY started_on DESC
	`

	InsertEnrollment = `
	INSERT INTO enrollments (member_id, instructor_id, course_code, course_title, started_on, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`

	UpdateEnrollment = `
	UPDATE enrollments SET
		status = $2, completed_on = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	ListLedgerEntries = `
	SELECT * FROM ledger_entries
	WHERE member_id = $1 AND kind = $2 AND entry_date >= $3 AND entry_date <= $4
	ORDER BY entry_date, created_at
	`

	SumLedgerBefore = `
	SELECT COALESCE(SUM(CASE WHEN kind = 'charge' THEN amount ELSE -amount END), 0)
	FROM ledger_entries
	WHERE member_id = $1 AND entry_date < $2
	`

	InsertLedgerEntry = `
	INSERT INTO ledger_entries (member_id, entry_date, kind, description, amount, reference)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at
	`

	GetSchoolConfigs = `
	SELECT config_key, config_value FROM school_configs WHERE school_id = $1
	`

	UpsertSchoolConfig = `
	INSERT INTO school_configs (school_id, config_key, config_value)
	VALUES ($1, $2, $3)
	ON CONFLICT (school_id, config_key) DO UPDATE SET config_value = EXCLUDED.config_value
	`

	ListSchoolIDs = `
	SELECT id FROM schools
	`

	GetStatusByApiKey = `
	SELECT * FROM api_keys WHERE api_key = $1
	`

	InsertApiKey = `
	INSERT INTO api_keys (api_key, school_id, is_active) VALUES ($1, $2, TRUE)
	`
)
