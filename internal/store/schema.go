package store

const schema = `
CREATE TABLE IF NOT EXISTS backups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    path TEXT NOT NULL,
    package_count INTEGER NOT NULL,
    kernel_release TEXT
);

CREATE TABLE IF NOT EXISTS backup_packages (
    backup_id INTEGER NOT NULL,
    package_name TEXT NOT NULL,
    PRIMARY KEY (backup_id, package_name),
    FOREIGN KEY (backup_id) REFERENCES backups(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_backups_created ON backups(created_at);
CREATE INDEX IF NOT EXISTS idx_backup_packages ON backup_packages(backup_id);
`
