package sqlinline

const QInsertContactMessage = `--sql 8ff75690-e378-4547-92fe-38545e8388f8
insert into contact_messages(name, email, phone, subject, message, status, created_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, 'new', now())
returning id, created_at;
`

const QMarkMessageRead = `--sql aff95c1c-8942-474e-8501-9724c9fc75dd
update contact_messages
set status = 'read'
where id = $1::bigint and status = 'new';
`

const QListRecentMessages = `--sql 511240d8-4fac-439c-a890-781715bf44fa
select id, name, email, phone, subject, message, status, created_at
from contact_messages
order by created_at desc
limit $1::int;
`
