package sqlinline

const QInsertActivity = `--sql eccd9227-1944-46fb-988d-852ad69a206a
insert into activity_logs(action, details, user_id, ip_address, user_agent, country, created_at)
values ($1::text, $2::text, $3::bigint, $4::text, $5::text, $6::text, now());
`

const QListRecentActivity = `--sql ccf03dce-00de-40f6-95fc-6f3590efd0cf
select id, action, details, user_id, ip_address, user_agent, country, created_at
from activity_logs
order by created_at desc
limit $1::int;
`
