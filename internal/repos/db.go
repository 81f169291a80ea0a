package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: sqlite serializes writers anyway, and a pool would
	// hand ":memory:" callers a fresh empty database per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the catalog if empty. Seed failure is fatal to the caller:
	// nothing works against an empty catalog.
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog (read-only after seed)
CREATE TABLE IF NOT EXISTS catalog(
  id TEXT PRIMARY KEY COLLATE NOCASE,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  brand TEXT,
  size TEXT,
  units TEXT,
  tags TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_catalog_name     ON catalog(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_catalog_category ON catalog(LOWER(category));

-- Carts (one per session)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL REFERENCES catalog(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, item_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  order_id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  total NUMERIC NOT NULL,
  customer_name TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'received'
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
  item_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (order_id, item_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM catalog`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting grocery catalog")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO catalog(id,name,category,price,brand,size,units,tags) VALUES
	  ('whole-milk','Whole Milk','dairy',3.49,'Meadow Farms','1','gal','milk,dairy,breakfast'),
	  ('oat-milk','Oat Milk','dairy',4.99,'Oatly','64','fl oz','milk,dairy,plant-based'),
	  ('eggs-dozen','Large Eggs','dairy',4.29,'Sunrise','12','ct','eggs,breakfast,protein'),
	  ('butter','Salted Butter','dairy',5.49,'Meadow Farms','16','oz','butter,dairy,baking'),
	  ('sourdough','Sourdough Loaf','bakery',5.99,'Hearth & Co','24','oz','bread,bakery'),
	  ('coffee-beans','Dark Roast Coffee Beans','beverages',12.99,'Ember Roasters','12','oz','coffee,beans,breakfast'),
	  ('orange-juice','Orange Juice','beverages',4.79,'Grove Press','52','fl oz','juice,breakfast'),
	  ('spaghetti','Spaghetti','pasta',1.89,'Casa Bella','16','oz','pasta,dinner'),
	  ('tomato-sauce','Tomato Basil Sauce','pasta',3.29,'Casa Bella','24','oz','sauce,pasta,dinner'),
	  ('parmesan','Grated Parmesan','dairy',6.49,'Casa Bella','8','oz','cheese,pasta,dairy'),
	  ('flour','All-Purpose Flour','baking',3.99,'Miller''s','5','lb','flour,baking'),
	  ('maple-syrup','Pure Maple Syrup','breakfast',9.99,'North Woods','12','fl oz','syrup,breakfast,pancakes'),
	  ('tortillas','Flour Tortillas','bakery',3.59,'La Cocina','10','ct','tortillas,tacos,dinner'),
	  ('ground-beef','Ground Beef 85/15','meat',7.99,'Prairie Ranch','1','lb','beef,meat,tacos,dinner'),
	  ('salsa','Medium Salsa','pantry',4.49,'La Cocina','16','oz','salsa,tacos,dip')`)
	if err != nil {
		return err
	}

	return tx.Commit()
}
