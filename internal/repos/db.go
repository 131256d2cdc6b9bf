package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount_percentage INTEGER NOT NULL DEFAULT 0 CHECK (discount_percentage BETWEEN 0 AND 100),
  rating NUMERIC NOT NULL DEFAULT 0,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  image_url TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Users & profiles
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  telephone TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username  ON users(LOWER(username));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email     ON users(LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_telephone ON users(telephone);

CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  admin_level INTEGER NOT NULL DEFAULT 2
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Cart
CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE(user_id, product_id)
);

-- Quotations
CREATE TABLE IF NOT EXISTS quotations(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  qname TEXT NOT NULL,
  address TEXT NOT NULL,
  qnumber TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
  total_price NUMERIC NOT NULL,
  request_date TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_quotations_user   ON quotations(user_id);
CREATE INDEX IF NOT EXISTS idx_quotations_status ON quotations(status);

CREATE TABLE IF NOT EXISTS quotation_items(
  quotation_id TEXT NOT NULL REFERENCES quotations(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (quotation_id, product_id)
);

-- Orders (one per paid quotation)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL UNIQUE REFERENCES quotations(id),
  user_id TEXT NOT NULL REFERENCES users(id),
  payment_slip TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'PENDING' CHECK (payment_status IN ('PENDING','APPROVED','REJECTED')),
  deliver_status TEXT NOT NULL DEFAULT 'PENDING' CHECK (deliver_status IN ('PENDING','PROCESSING','SHIPPED','DELIVERED','CANCELLED','RETURNED')),
  total_amount NUMERIC NOT NULL,
  created_date TEXT DEFAULT CURRENT_TIMESTAMP,
  delivered_date TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

-- Support tickets
CREATE TABLE IF NOT EXISTS support_tickets(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  support_type TEXT NOT NULL,
  description TEXT NOT NULL,
  remark TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending','In Progress','Solved','Closed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_support_user ON support_tickets(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('showers','Showers'),
	  ('faucets','Faucets'),
	  ('bathtubs','Bathtubs'),
	  ('accessories','Bathroom Accessories')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,stock_quantity,image_url,rating) VALUES
	  ('shower-rain-01','showers','Rainfall Shower Head','10-inch stainless rainfall head, chrome finish',5400.00,18,'/images/shower-rain-01.jpg',4.5),
	  ('shower-mixer-01','showers','Thermostatic Shower Mixer','Anti-scald thermostatic valve with dual outlet',12900.00,7,'/images/shower-mixer-01.jpg',4.2),
	  ('faucet-basin-01','faucets','Basin Mixer Tap','Single-lever brass basin mixer, brushed nickel',4600.00,25,'/images/faucet-basin-01.jpg',4.0),
	  ('faucet-kitchen-01','faucets','Pull-Out Kitchen Faucet','Pull-out spray head, 360 degree swivel',8900.00,0,'/images/faucet-kitchen-01.jpg',4.7),
	  ('tub-acrylic-01','bathtubs','Freestanding Acrylic Tub','1700mm freestanding tub with overflow',87500.00,3,'/images/tub-acrylic-01.jpg',4.8),
	  ('acc-towel-01','accessories','Towel Rail Set','600mm wall-mounted towel rail, stainless',2100.00,40,'/images/acc-towel-01.jpg',3.9)`)

	return tx.Commit()
}

// seedUsers ensures demo customers and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Email, Telephone, Role, Hash string
		AdminLevel                                 int
	}
	mk := func(id, username, email, phone, role, raw string, level int) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Username: username, Email: email, Telephone: phone, Role: role, Hash: string(h), AdminLevel: level}
	}

	users := []u{
		mk("u-alice", "alice", "alice@bathstore.test", "0771234001", "USER", "Passw0rd!", 0),
		mk("u-bob", "bob", "bob@bathstore.test", "0771234002", "USER", "Passw0rd!", 0),
		mk("u-admin", "admin", "admin@bathstore.test", "0771234000", "ADMIN", "Passw0rd!", 1),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,telephone,password_hash,role)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT DO NOTHING
		`, x.ID, x.Username, x.Email, x.Telephone, x.Hash, x.Role); err != nil {
			return err
		}
		if x.Role == "ADMIN" {
			if _, err := tx.Exec(`
				INSERT INTO admins(id,user_id,admin_level)
				SELECT 'a-'||?, ?, ?
				WHERE NOT EXISTS (SELECT 1 FROM admins WHERE user_id=?)
			`, x.ID, x.ID, x.AdminLevel, x.ID); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(`
				INSERT INTO customers(id,user_id)
				SELECT 'c-'||?, ?
				WHERE NOT EXISTS (SELECT 1 FROM customers WHERE user_id=?)
			`, x.ID, x.ID, x.ID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
