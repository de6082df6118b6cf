package customer

import "time"

type Customer struct {
	CustomerID   string  `json:"customerId" db:"customer_id"`
	CompanyName  string  `json:"companyName" db:"company_name"`
	ContactName  *string `json:"contactName,omitempty" db:"contact_name"`
	ContactTitle *string `json:"contactTitle,omitempty" db:"contact_title"`
	Address      *string `json:"address,omitempty" db:"address"`
	City         *string `json:"city,omitempty" db:"city"`
	Region       *string `json:"region,omitempty" db:"region"`
	PostalCode   *string `json:"postalCode,omitempty" db:"postal_code"`
	Country      *string `json:"country,omitempty" db:"country"`
	Phone        *string `json:"phone,omitempty" db:"phone"`
	Fax          *string `json:"fax,omitempty" db:"fax"`

	// Orders are loaded by Find only.
	Orders []Order `json:"orders,omitempty" db:"-"`
}

type Order struct {
	OrderID        int        `json:"orderId" db:"order_id"`
	CustomerID     *string    `json:"customerId,omitempty" db:"customer_id"`
	EmployeeID     *int       `json:"employeeId,omitempty" db:"employee_id"`
	OrderDate      *time.Time `json:"orderDate,omitempty" db:"order_date"`
	RequiredDate   *time.Time `json:"requiredDate,omitempty" db:"required_date"`
	ShippedDate    *time.Time `json:"shippedDate,omitempty" db:"shipped_date"`
	ShipVia        *int       `json:"shipVia,omitempty" db:"ship_via"`
	Freight        *float64   `json:"freight,omitempty" db:"freight"`
	ShipName       *string    `json:"shipName,omitempty" db:"ship_name"`
	ShipAddress    *string    `json:"shipAddress,omitempty" db:"ship_address"`
	ShipCity       *string    `json:"shipCity,omitempty" db:"ship_city"`
	ShipRegion     *string    `json:"shipRegion,omitempty" db:"ship_region"`
	ShipPostalCode *string    `json:"shipPostalCode,omitempty" db:"ship_postal_code"`
	ShipCountry    *string    `json:"shipCountry,omitempty" db:"ship_country"`
}
