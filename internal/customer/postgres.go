package customer

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	"github.com/jmoiron/sqlx"
)

const customerColumns = `customer_id, company_name, contact_name, contact_title, address,
	city, region, postal_code, country, phone, fax`

const orderColumns = `order_id, customer_id, employee_id, order_date, required_date, shipped_date,
	ship_via, freight, ship_name, ship_address, ship_city, ship_region, ship_postal_code, ship_country`

type postgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Insert(ctx context.Context, c *Customer) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.CustomerID, c.CompanyName, c.ContactName, c.ContactTitle, c.Address,
		c.City, c.Region, c.PostalCode, c.Country, c.Phone, c.Fax)
	if err != nil {
		return err
	}

	for i := range c.Orders {
		o := &c.Orders[i]
		o.CustomerID = &c.CustomerID

		err := tx.QueryRowxContext(ctx, `
			INSERT INTO orders (customer_id, employee_id, order_date, required_date, shipped_date,
				ship_via, freight, ship_name, ship_address, ship_city, ship_region, ship_postal_code, ship_country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING order_id`,
			o.CustomerID, o.EmployeeID, o.OrderDate, o.RequiredDate, o.ShippedDate,
			o.ShipVia, o.Freight, o.ShipName, o.ShipAddress, o.ShipCity, o.ShipRegion,
			o.ShipPostalCode, o.ShipCountry).
			Scan(&o.OrderID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *postgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM customers WHERE customer_id = $1)`, id)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	err := s.db.GetContext(ctx, &c, `
		SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &c.Orders, `
		SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY order_id`, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *postgresStore) All(ctx context.Context) iter.Seq2[Customer, error] {
	return func(yield func(Customer, error) bool) {
		rows, err := s.db.QueryxContext(ctx, `SELECT `+customerColumns+` FROM customers`)
		if err != nil {
			yield(Customer{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var c Customer
			if err := rows.StructScan(&c); err != nil {
				yield(Customer{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(Customer{}, err)
		}
	}
}

func (s *postgresStore) Page(ctx context.Context, offset, limit int) ([]Customer, error) {
	customers := []Customer{}
	err := s.db.SelectContext(ctx, &customers, `
		SELECT `+customerColumns+` FROM customers
		ORDER BY customer_id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (s *postgresStore) DeleteSingle(ctx context.Context, id string) (*Customer, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// two rows are enough to tell "exactly one" from "many"
	var found []Customer
	err = tx.SelectContext(ctx, &found, `
		SELECT `+customerColumns+` FROM customers WHERE customer_id = $1 LIMIT 2 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, ErrCustomerNotFound
	case 1:
	default:
		return nil, ErrMultipleCustomers
	}

	// orders outlive their customer with a NULL reference
	if _, err := tx.ExecContext(ctx, `UPDATE orders SET customer_id = NULL WHERE customer_id = $1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = $1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &found[0], nil
}

func (s *postgresStore) Replace(ctx context.Context, c Customer) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers SET company_name = $2, contact_name = $3, contact_title = $4, address = $5,
			city = $6, region = $7, postal_code = $8, country = $9, phone = $10, fax = $11
		WHERE customer_id = $1`,
		c.CustomerID, c.CompanyName, c.ContactName, c.ContactTitle, c.Address,
		c.City, c.Region, c.PostalCode, c.Country, c.Phone, c.Fax)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (s *postgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}
